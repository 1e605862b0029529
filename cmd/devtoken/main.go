package main

import (
    "fmt"
    "os"
    "time"

    "github.com/d60-Lab/starlog/config"
    "github.com/d60-Lab/starlog/pkg/jwt"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// 本地调试用：为 USER_ID 签发一个令牌
func main() {
    cfg := must(config.Load())

    userID := os.Getenv("USER_ID")
    if userID == "" { userID = "local-user" }
    ttl := cfg.JWT.Expire
    if s := os.Getenv("TTL"); s != "" { if d, e := time.ParseDuration(s); e == nil && d > 0 { ttl = d } }

    tok := must(jwt.GenerateToken(userID, cfg.JWT.Secret, cfg.JWT.Issuer, ttl))
    fmt.Printf("USER_ID=%s TTL=%v\n", userID, ttl)
    fmt.Println("Authorization: Bearer " + tok)
}
