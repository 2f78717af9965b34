// File: horizon/utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis token-verification cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for token-verification cache entries.
const AuthCacheTTL = 10 * time.Minute

// VoucherFolder is the Cloudinary folder holding generated booking vouchers.
const VoucherFolder = "vouchers"
