// Package merger combines records for one conceptual entity from several
// independent feeds. Sources are consumed in trust order and duplicates
// are dropped whole: the first source to report an identity wins, later
// sources never overwrite individual fields.
package merger

import "strings"

// Source is one feed's contribution, tagged with the feed's name
type Source[T any] struct {
	Name    string
	Records []T
}

// Merge deduplicates the sources' records by identity. identities returns
// every key a record answers to; a record is a duplicate when any of its
// keys has been seen, and a kept record registers all of them, so a feed
// carrying a provider id and a later name-only sighting of the same player
// still collide. Sources must be passed in descending trust order. Records
// with no usable identity are skipped. Output order is deterministic:
// source order, then record order within a source.
func Merge[T any](identities func(T) []string, sources ...Source[T]) []T {
	seen := make(map[string]struct{})
	var out []T

	for _, src := range sources {
		for _, rec := range src.Records {
			keys := identities(rec)

			dup := false
			for _, key := range keys {
				if key == "" {
					continue
				}
				if _, ok := seen[key]; ok {
					dup = true
					break
				}
			}
			if dup {
				continue
			}

			kept := false
			for _, key := range keys {
				if key == "" {
					continue
				}
				seen[key] = struct{}{}
				kept = true
			}
			if kept {
				out = append(out, rec)
			}
		}
	}

	return out
}

// IdentityKeys returns every identity a player record answers to: the
// provider id key when the record carries one, plus the normalized
// name+team alias when the name is usable. Registering both is what lets
// an id-carrying feed absorb a name-only sighting of the same player.
func IdentityKeys(providerID, playerName, teamAbbr string) []string {
	var keys []string
	if providerID != "" {
		keys = append(keys, "id:"+providerID)
	}
	if name := normalizeName(playerName); name != "" {
		keys = append(keys, "name:"+name+":"+strings.ToUpper(strings.TrimSpace(teamAbbr)))
	}
	return keys
}

// IdentityKey builds the most specific identity available for a player
// record: the provider-assigned id when present, else a normalized
// name+team synthetic key. Returns "" when neither is available.
func IdentityKey(providerID, playerName, teamAbbr string) string {
	if providerID != "" {
		return "id:" + providerID
	}

	name := normalizeName(playerName)
	if name == "" {
		return ""
	}

	return "name:" + name + ":" + strings.ToUpper(strings.TrimSpace(teamAbbr))
}

// normalizeName lowercases and strips punctuation and suffixes so the
// same player spelled differently across feeds still collides
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())

	// Drop generational suffixes that some feeds include
	if n := len(fields); n > 1 {
		switch fields[n-1] {
		case "jr", "sr", "ii", "iii", "iv":
			fields = fields[:n-1]
		}
	}

	return strings.Join(fields, " ")
}
