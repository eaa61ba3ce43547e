// Package validator provides token predicates for sbam.Manager.
//
// NonZero is the manager's default. JWT and OAuth2 are ready-made
// replacements for the two token shapes clients most often hold. None of them
// verify signatures or expiry.
package validator
