package evidence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// #region load
// Load reads evidence items from a file. Files ending in .jsonl are parsed
// line by line; everything else is parsed as a single JSON array.
func Load(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open evidence file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".jsonl") {
		return FromJSONLReader(f)
	}
	return FromReader(f)
}

// FromReader parses a JSON array of items.
func FromReader(r io.Reader) ([]Item, error) {
	var items []Item
	dec := json.NewDecoder(r)
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode evidence JSON: %w", err)
	}
	return items, nil
}

// FromJSONLReader parses one item per non-empty line.
func FromJSONLReader(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var it Item
		if err := json.Unmarshal([]byte(text), &it); err != nil {
			return nil, fmt.Errorf("decode evidence JSONL line %d: %w", line, err)
		}
		items = append(items, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read evidence JSONL: %w", err)
	}
	return items, nil
}

// #endregion load
