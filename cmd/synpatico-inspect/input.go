package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/synpatico-dev/synpatico"
)

// readValue reads a JSON document from path, or stdin when path is
// "-" or empty, and lifts it into the engine's Value domain.
func readValue(path string) (synpatico.Value, error) {
	raw, err := readBytes(path)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return synpatico.ValueFromAny(decoded), nil
}

func readBytes(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
