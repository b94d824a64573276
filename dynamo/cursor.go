package dynamo

import (
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Pagination cursors are the base64 of the JSON-encoded exclusive start
// key. Opaque to clients; a tampered cursor surfaces as INVALID_CURSOR at
// the call site.

func encodeCursor(startKey map[string]types.AttributeValue) (string, error) {
	raw, err := attributevalue.MarshalMapJSON(startKey)
	if err != nil {
		return "", fmt.Errorf("failed to JSON-encode cursor key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("cursor is not valid base64: %w", err)
	}

	startKey, err := attributevalue.UnmarshalMapJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("cursor does not decode to a key: %w", err)
	}
	return startKey, nil
}

// keyAttributesOf projects an item down to the attributes named in key,
// so the cursor points at the last item actually returned rather than at
// wherever the page scan stopped.
func keyAttributesOf(key, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(key))
	for k := range key {
		out[k] = item[k]
	}
	return out
}
