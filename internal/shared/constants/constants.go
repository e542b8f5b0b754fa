// Package constants holds context keys and cache key builders shared across layers.
package constants

import "fmt"

// Gin context keys set by the session guard.
const (
	ContextKeyClaims   = "jwt_claims"
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// ReplacementTokenHeader carries a freshly minted token back to the client;
// the frontend interceptor swaps its stored token when the header is present.
const ReplacementTokenHeader = "jwt_new_token"

// Cache key namespaces. Everything ephemeral lives in the cache under
// "it:<entity>:<discriminator>" style keys.
const (
	RevocationBitmapKey = "it:black:bf"
	WeChatTokenKey      = "it:work:token"
)

// SessionKey is the canonical-token pointer for one identity. A fresh login
// overwrites it; a presented token that mismatches it is stale.
func SessionKey(name, department string) string {
	return fmt.Sprintf("%s:%s:jwt", name, department)
}

// GraceKey holds the replacement token for a retired one during the swap window.
func GraceKey(token string) string {
	return "it:tmp-list:" + token
}

// OrderSeqKey is the advisory daily work-order counter, keyed by YYYYMMDD.
func OrderSeqKey(datePrefix string) string {
	return "it:orderID:" + datePrefix
}

// PatrolSeqKey is the advisory monthly patrol counter, keyed by YYYYMM.
func PatrolSeqKey(monthPrefix string) string {
	return "it:patrolID:" + monthPrefix
}

// SMSWindowKey rate-limits captcha issuance per equipment.
func SMSWindowKey(equipmentID uint) string {
	return fmt.Sprintf("it:sms:%d", equipmentID)
}

// CaptchaKey caches the captcha issued for a case or phone number.
func CaptchaKey(discriminator string) string {
	return "it:captcha:" + discriminator
}

// VersionKey is the cache-busting stamp for a list view.
func VersionKey(entity string) string {
	return entity + "-version"
}
