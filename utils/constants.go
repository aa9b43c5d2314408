// File: utils/constants.go
package utils

// SalonOwnerCachePrefix keys the cached salon resolved for an owner user id.
const SalonOwnerCachePrefix = "salon:owner:"

// RevokedTokenPrefix keys revoked access-token hashes.
const RevokedTokenPrefix = "auth:revoked:"
