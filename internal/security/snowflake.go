package security

import (
	"errors"
	"strconv"
	"strings"
)

// ParseSnowflake valida um id do Discord (guild, user ou channel).
func ParseSnowflake(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty snowflake")
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("snowflake must be a positive integer")
	}
	if id == 0 {
		return 0, errors.New("snowflake must be > 0")
	}
	return id, nil
}
