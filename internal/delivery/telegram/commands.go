package telegram

import (
	"errors"
	"strconv"
	"strings"
)

const helpHeader = `Commands:
/start - register
/help - show this help
/ping - check that I'm alive
/add <link> <target price> - start monitoring a product
/remove <item_id> - stop monitoring a product
/status - list your items and their prices

Notes:
- Write the price as XXXXXX,XX or XXXXXX.XX, with no currency symbol.
- If the product link contains spaces, replace them with %20.

Supported stores:
`

var ErrInvalidArguments = errors.New("invalid arguments")

// HelpText appends the store list so users always see which domains the bot
// accepts.
func HelpText(stores []string) string {
	var builder strings.Builder
	builder.WriteString(helpHeader)
	for _, store := range stores {
		builder.WriteString("  - ")
		builder.WriteString(store)
		builder.WriteString("\n")
	}
	return builder.String()
}

func ParseAddArgs(args string) (url, price string, err error) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return "", "", ErrInvalidArguments
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func ParseItemID(args string) (uint, error) {
	idStr := strings.TrimSpace(args)
	if idStr == "" {
		return 0, ErrInvalidArguments
	}
	value, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	return uint(value), nil
}
