// Package sbam provides a storage-backed auth manager: a small client-side
// holder for one session token.
//
// A Manager keeps the current token in memory and mirrors it, serialized, to
// exactly one backend under one key. Backends are selected by kind:
//  1. store.Local – persistent snapshot behind an afs URL,
//  2. store.Session – process-scoped memory bound to a session ID,
//  3. store.Cookie – a cookie in an http.CookieJar.
//
// Structured tokens (structs, maps, pointers) are stored as JSON, string
// tokens verbatim. Loading first tries JSON and falls back to the raw text,
// so a string token that is itself valid JSON for T comes back decoded.
//
// Example:
//
//	manager, _ := sbam.New[*oauth2.Token](ctx,
//		sbam.WithStorageType(store.Local),
//		sbam.WithValidator(validator.OAuth2),
//		sbam.OnSave(func(token *oauth2.Token) { /* … */ }),
//	)
//	manager.Login(ctx, token)
//	_ = manager.Migrate(ctx, store.Cookie)
//	manager.Logout(ctx)
//
// Save and Remove never return errors: failures are logged and reported as
// false, as are validation rejections.
package sbam
