package utils

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity ID prefixes. Every identifier is 13 characters: a 2-char type
// prefix, 2 digits, 9 alphanumerics, uppercased.
const (
	PrefixUser         = "US"
	PrefixTeam         = "TM"
	PrefixProject      = "PJ"
	PrefixTask         = "TA"
	PrefixComment      = "CM"
	PrefixAttachment   = "AT"
	PrefixNotification = "NT"
	PrefixActivityLog  = "AC"
	PrefixTimeLog      = "TL"
)

// UniqueIDService provides ID generation functionality.
type UniqueIDService struct{}

// NewUniqueIDService creates a new UniqueIDService.
func NewUniqueIDService() *UniqueIDService {
	return &UniqueIDService{}
}

// GenerateID creates an ID with the given 2-char type prefix followed by
// 2 random digits and 9 random alphanumerics.
//
// Example output with prefix "TA": TA12ABC345XYZ
func (s *UniqueIDService) GenerateID(prefix string) (string, error) {
	digits := "0123456789"
	alnum := "0123456789abcdefghijklmnopqrstuvwxyz"

	twoDigits, err := gonanoid.Generate(digits, 2)
	if err != nil {
		return "", fmt.Errorf("failed to generate two digits: %w", err)
	}

	nineAlnum, err := gonanoid.Generate(alnum, 9)
	if err != nil {
		return "", fmt.Errorf("failed to generate alphanumeric part: %w", err)
	}

	return strings.ToUpper(prefix + twoDigits + nineAlnum), nil
}

// Global instance shared by the services.
var UniqueIDSvc = NewUniqueIDService()

// GenerateUniqueID generates an ID using the shared instance.
func GenerateUniqueID(prefix string) (string, error) {
	return UniqueIDSvc.GenerateID(prefix)
}
