package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go-careermatch-backend/internal/domain"
)

// fallbackFullName is substituted when registration supplies a blank name, so
// identifier allocation always has something to derive from.
const fallbackFullName = "User X"

// IdentifierAllocator derives human-readable account identifiers from a
// person's name: up to five letters of the last name, a sequence number, and
// the first initial ("Ada Lovelace" becomes lovel1a, then lovel2a, ...).
// Probing is bounded; two users with very popular names past the bound get an
// error rather than an unbounded scan.
type IdentifierAllocator struct {
	userRepo  domain.UserRepository
	maxProbes int
}

func NewIdentifierAllocator(userRepo domain.UserRepository, maxProbes int) *IdentifierAllocator {
	if maxProbes <= 0 {
		maxProbes = 1000
	}
	return &IdentifierAllocator{userRepo: userRepo, maxProbes: maxProbes}
}

// ErrIdentifiersExhausted reports that every candidate identifier within the
// probe bound is taken.
var ErrIdentifiersExhausted = fmt.Errorf("identifier allocation: probe bound reached")

// Allocate returns the first free identifier for fullName. The result is not
// reserved; the caller must handle a duplicate-key error on insert and retry.
func (a *IdentifierAllocator) Allocate(ctx context.Context, fullName string) (string, error) {
	stem, initial := splitName(fullName)
	for n := 1; n <= a.maxProbes; n++ {
		candidate := stem + strconv.Itoa(n) + initial
		taken, err := a.userRepo.ExistsByUserID(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrIdentifiersExhausted
}

// splitName lowercases the name and returns the identifier stem (first five
// letters of the last whitespace-separated token) and the first initial of
// the given name. Blank input falls back to "User X".
func splitName(fullName string) (stem, initial string) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		fields = strings.Fields(fallbackFullName)
	}

	last := sanitizeToken(fields[len(fields)-1])
	if last == "" {
		last = "x"
	}
	if r := []rune(last); len(r) > 5 {
		last = string(r[:5])
	}

	first := sanitizeToken(fields[0])
	if first == "" {
		first = "x"
	}
	return last, string([]rune(first)[:1])
}

// sanitizeToken keeps letters and digits only, lowercased, so punctuated
// names ("O'Brien") still yield usable identifiers.
func sanitizeToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
