package errors

// maxSessionIDLen bounds ids that end up in file names and store keys.
const maxSessionIDLen = 128

// ValidateInsert checks an insertion of count items at start into a list
// that held before items.
func ValidateInsert(start, count, before int) error {
	if start < 0 || count < 0 || start > before {
		return New(ErrCodeInvalidRange, "insert of %d items at %d into %d items", count, start, before)
	}
	return nil
}

// ValidateRemove checks a removal of count items at start from a list that
// held before items.
func ValidateRemove(start, count, before int) error {
	if start < 0 || count < 0 || start+count > before {
		return New(ErrCodeInvalidRange, "removal of %d items at %d from %d items", count, start, before)
	}
	return nil
}

// ValidateSessionID rejects ids that are empty, overlong or contain anything
// besides ASCII letters, digits, '-' and '_'. Ids are used as file names.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "empty session id")
	}
	if len(id) > maxSessionIDLen {
		return New(ErrCodeInvalidInput, "session id too long (max %d characters)", maxSessionIDLen)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return New(ErrCodeInvalidInput, "session id contains invalid character %q", r)
		}
	}
	return nil
}
