// Package corpus runs the preprocessing pipeline over batches of documents.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// Item is one input document
type Item struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Text   string `json:"text"`
	HTML   string `json:"html"` // used when Text is empty
}

// Validate checks if the item has something to process
func (it *Item) Validate() error {
	if strings.TrimSpace(it.Text) == "" && strings.TrimSpace(it.HTML) == "" {
		return errors.New("item text or html is required")
	}
	return nil
}

// LoadFromJSONL loads items from a JSONL file, skipping malformed lines
func LoadFromJSONL(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if err := item.Validate(); err != nil {
			log.Printf("Warning: skipping line %d in %s: %v", i+1, path, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return items, nil
}
