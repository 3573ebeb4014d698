package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownShape = errors.New("unknown novel info shape")

// Meta is the leading element of an API response, it only carries the hit count.
type Meta struct {
	Count int `json:"allcount"`
}

type Info struct {
	Title        string `json:"title"`
	Ncode        string `json:"ncode"`
	Writer       string `json:"writer"`
	ChapterCount int    `json:"general_all_no"`
	UpdatedAt    string `json:"novelupdated_at"`
}

// NovelInfo is one element of the API response array. Exactly one of Meta
// and Info is set after a successful decode.
type NovelInfo struct {
	Meta *Meta
	Info *Info
}

func (n *NovelInfo) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownShape, err)
	}

	if _, ok := fields["allcount"]; ok {
		meta := &Meta{}
		if err := json.Unmarshal(data, meta); err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownShape, err)
		}
		n.Meta, n.Info = meta, nil
		return nil
	}

	for _, key := range []string{"title", "ncode", "writer", "general_all_no", "novelupdated_at"} {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("%w: missing %q", ErrUnknownShape, key)
		}
	}
	info := &Info{}
	if err := json.Unmarshal(data, info); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownShape, err)
	}
	if info.Ncode == "" || len(info.Ncode) > MaxNovelIdLen {
		return fmt.Errorf("%w: bad ncode %q", ErrUnknownShape, info.Ncode)
	}
	if len(info.UpdatedAt) != len(UpdatedAtLayout) {
		return fmt.Errorf("%w: bad novelupdated_at %q", ErrUnknownShape, info.UpdatedAt)
	}
	n.Meta, n.Info = nil, info
	return nil
}

// Novel converts the full record into a Novel, lowercasing the code.
func (i *Info) Novel(adult bool) *Novel {
	return &Novel{
		Title:        i.Title,
		Code:         NovelId(NovelId(i.Ncode).String()),
		Author:       i.Writer,
		ChapterCount: i.ChapterCount,
		UpdatedAt:    i.UpdatedAt,
		Adult:        adult,
	}
}
