package rascql

import (
	"strconv"
	"strings"
)

// CommandTag is the closed sum of shapes CommandComplete's tag can take,
// per Scenario H: "name oid rows", "name rows", or just "name".
type CommandTag interface {
	isCommandTag()
}

// OIDWithRows is a command tag naming the affected object OID and row
// count, e.g. INSERT's "INSERT <oid> <rows>".
type OIDWithRows struct {
	Name string
	OID  int32
	Rows int64
}

func (OIDWithRows) isCommandTag() {}

// RowsAffected is a command tag naming only an affected row count, e.g.
// "SELECT <rows>".
type RowsAffected struct {
	Name string
	Rows int64
}

func (RowsAffected) isCommandTag() {}

// NameOnly is a command tag with no numeric suffix, e.g. "BEGIN".
type NameOnly struct {
	Name string
}

func (NameOnly) isCommandTag() {}

// parseCommandTag splits a CommandComplete tag string on spaces and
// classifies it per §8 Scenario H.
func parseCommandTag(tag string) CommandTag {
	parts := strings.Fields(tag)

	switch len(parts) {
	case 3:
		oid, oidErr := strconv.ParseInt(parts[1], 10, 32)
		rows, rowsErr := strconv.ParseInt(parts[2], 10, 64)
		if oidErr == nil && rowsErr == nil {
			return OIDWithRows{Name: parts[0], OID: int32(oid), Rows: rows}
		}

		return NameOnly{Name: tag}
	case 2:
		rows, err := strconv.ParseInt(parts[1], 10, 64)
		if err == nil {
			return RowsAffected{Name: parts[0], Rows: rows}
		}

		return NameOnly{Name: tag}
	case 1:
		return NameOnly{Name: parts[0]}
	default:
		return NameOnly{Name: tag}
	}
}
