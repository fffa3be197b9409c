package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"crypto-price/internal/controller"
	"crypto-price/internal/pair"
)

// Format selects the renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a user supplied output format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want text or json)", s)
}

type snapshotJSON struct {
	Pair    string `json:"pair,omitempty"`
	State   string `json:"state"`
	Value   string `json:"value,omitempty"`
	Exact   string `json:"exact,omitempty"`
	Message string `json:"message,omitempty"`
}

// Render writes snap to w in the requested format.
func Render(w io.Writer, format Format, snap controller.Snapshot) error {
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(toJSON(snap))
	}
	_, err := fmt.Fprintln(w, Text(snap))
	return err
}

// Text renders a one-line human readable view of snap.
func Text(snap controller.Snapshot) string {
	st := snap.State
	switch st.Status {
	case controller.StatusLoading:
		return "Loading..."
	case controller.StatusSuccess:
		return fmt.Sprintf("%s: %s", snap.Pair, st.Value)
	case controller.StatusFailed:
		return "error: " + st.Message
	}
	if snap.Pair == "" {
		return "Select a pair and fetch its rate."
	}
	return fmt.Sprintf("%s selected. Run fetch to get the rate.", snap.Pair)
}

func toJSON(snap controller.Snapshot) snapshotJSON {
	out := snapshotJSON{Pair: snap.Pair.String(), State: snap.State.Status.String()}
	switch snap.State.Status {
	case controller.StatusSuccess:
		out.Value = snap.State.Value
		out.Exact = snap.State.Exact.String()
	case controller.StatusFailed:
		out.Message = snap.State.Message
	}
	return out
}

// Pairs writes the numbered pair list, marking the unitless ratio pair.
func Pairs(w io.Writer, pairs []pair.Pair, selected pair.Pair) error {
	for i, p := range pairs {
		mark := " "
		if p == selected {
			mark = "*"
		}
		unit := "USD"
		if p.IsRatio() {
			unit = "ratio"
		}
		if _, err := fmt.Fprintf(w, "%s %d) %-10s %s\n", mark, i+1, p, unit); err != nil {
			return err
		}
	}
	return nil
}
