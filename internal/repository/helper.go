package repository

import (
	"encoding/json"
	"fmt"
)

type QueryType string

const (
	QueryTypeSelect QueryType = "select"
	QueryTypeCount  QueryType = "count"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func encodeBody(body map[string]any) (string, error) {
	if body == nil {
		return "{}", nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}
	return string(b), nil
}

func decodeBody(raw []byte) (map[string]any, error) {
	body := map[string]any{}
	if len(raw) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("unmarshal body: %w", err)
	}
	return body, nil
}
