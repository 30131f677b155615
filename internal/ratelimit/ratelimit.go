package ratelimit

import (
	"context"
	"time"
)

// Rule - лимит: не более Limit запросов на ключ за Window
type Rule struct {
	Name    string
	Limit   int
	Window  time.Duration
	Message string
}

// Limiter считает запросы по правилу и ключу (IP, телефон, email)
type Limiter interface {
	Allow(ctx context.Context, rule Rule, key string) (bool, error)
}

// Правила для /api/auth
var (
	AuthGroup = Rule{Name: "auth", Limit: 100, Window: 15 * time.Minute, Message: "Too many requests, try again later."}
	Register  = Rule{Name: "register", Limit: 10, Window: 15 * time.Minute, Message: "Too many register attempts, try again later."}
	Login     = Rule{Name: "login", Limit: 20, Window: 15 * time.Minute, Message: "Too many login attempts, try again later."}

	OTPCooldown = Rule{Name: "otp-cooldown", Limit: 1, Window: time.Minute, Message: "Please wait 1 minute before requesting another OTP."}
	OTPBurst    = Rule{Name: "otp-burst", Limit: 3, Window: 5 * time.Minute, Message: "Too many OTP requests. Try again in 5 minutes."}
	OTPDaily    = Rule{Name: "otp-daily", Limit: 10, Window: 24 * time.Hour, Message: "Daily OTP request limit reached. Try again tomorrow."}
	OTPPerIP    = Rule{Name: "otp-ip", Limit: 30, Window: 15 * time.Minute, Message: "Too many OTP requests from this IP. Try again later."}
	OTPVerify   = Rule{Name: "otp-verify", Limit: 50, Window: 15 * time.Minute, Message: "Too many OTP attempts. Try again later."}
)

// Noop пропускает все запросы (тесты, RATE_LIMIT_DISABLED)
type Noop struct{}

func (Noop) Allow(context.Context, Rule, string) (bool, error) { return true, nil }
