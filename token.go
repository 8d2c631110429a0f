// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package pipepoll

// Token is an opaque, caller-defined value, used to correlate registrations
// with the events reported by [Poll.Events]. There is no uniqueness
// constraint, many registrations may share a token.
type Token uint64
