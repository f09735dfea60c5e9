package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type BlockType string

const (
	BlockParagraph  BlockType = "paragraph"
	BlockHeading    BlockType = "heading"
	BlockSubheading BlockType = "subheading"
	BlockImage      BlockType = "image"
	BlockQuote      BlockType = "quote"
	BlockList       BlockType = "list"
)

// Block is one typed element of structured post content. Which fields are
// populated depends on Type: text blocks use Text, quotes add Author,
// images use URL and Caption, lists use Items.
type Block struct {
	Type    BlockType `json:"type"`
	Text    string    `json:"text,omitempty"`
	Author  string    `json:"author,omitempty"`
	URL     string    `json:"url,omitempty"`
	Caption string    `json:"caption,omitempty"`
	Items   []string  `json:"items,omitempty"`
}

// PlainText joins every human-readable field of the block.
func (b Block) PlainText() string {
	parts := make([]string, 0, 3+len(b.Items))
	for _, s := range []string{b.Text, b.Author, b.Caption} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, b.Items...)
	return strings.Join(parts, " ")
}

// Content is either a plain string or an ordered list of blocks. A non-nil
// Blocks slice marks the block form, even when it is empty.
type Content struct {
	Text   string
	Blocks []Block
}

func TextContent(text string) Content {
	return Content{Text: text}
}

func BlockContent(blocks ...Block) Content {
	if blocks == nil {
		blocks = []Block{}
	}
	return Content{Blocks: blocks}
}

func (c Content) IsBlocks() bool {
	return c.Blocks != nil
}

func (c Content) PlainText() string {
	if !c.IsBlocks() {
		return c.Text
	}
	parts := make([]string, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		if text := b.PlainText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsBlocks() {
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Content{}
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*c = TextContent(text)
		return nil
	case '[':
		var blocks []Block
		if err := json.Unmarshal(data, &blocks); err != nil {
			return err
		}
		*c = BlockContent(blocks...)
		return nil
	}
	return fmt.Errorf("content must be a string or an array of blocks, got %.20s", data)
}

const wordsPerMinute = 200

// EstimateReadingTime returns whole minutes at 200 words per minute,
// rounded up and never below one.
func EstimateReadingTime(c Content) int {
	words := len(strings.Fields(c.PlainText()))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
