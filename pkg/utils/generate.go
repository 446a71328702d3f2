package utils

import (
	"math/rand/v2"
	"strconv"
)

const (
	verificationCodeMin = 100000
	verificationCodeMax = 999999
)

// GenerateVerificationCode returns a uniformly sampled 6-digit code in
// [100000, 999999]. It is not suitable as a security-grade OTP.
func GenerateVerificationCode() string {
	return strconv.Itoa(verificationCodeMin + rand.IntN(verificationCodeMax-verificationCodeMin+1))
}
