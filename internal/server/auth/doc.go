// Package auth holds the credential primitives of the server: salted password
// digests, access token issuance and the input rules credentials must obey.
// Nothing here touches storage.
package auth
