// Package otp provides one-time password primitives: RFC 4226 HOTP and
// RFC 6238 TOTP code generation, base32 secret handling, and otpauth://
// provisioning URI parsing.
package otp
