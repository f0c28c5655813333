// Package format renders verdicts as human-readable messages.
package format

import (
	"fmt"
	"strings"

	"fergetid/internal/domain/entity"
	"fergetid/internal/util"
)

// Tone classifies how a highlighted fragment should be rendered.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneGood    Tone = "good"
	ToneWarn    Tone = "warn"
	ToneUrgent  Tone = "urgent"
)

// Highlighter decorates message fragments. Implementations decide what a
// tone looks like; the formatter decides which fragments carry one.
type Highlighter interface {
	Paint(tone Tone, text string) string
}

// PlainHighlighter renders fragments unchanged. Used for push notification
// bodies and JSON payloads.
type PlainHighlighter struct{}

func (PlainHighlighter) Paint(_ Tone, text string) string { return text }

// AnsiHighlighter colours fragments with ANSI escape codes for terminals.
type AnsiHighlighter struct{}

func (AnsiHighlighter) Paint(tone Tone, text string) string {
	var code string
	switch tone {
	case ToneGood:
		code = "\x1b[32m"
	case ToneWarn:
		code = "\x1b[33m"
	case ToneUrgent:
		code = "\x1b[31m"
	default:
		return text
	}

	return code + text + "\x1b[0m"
}

// Formatter turns a verdict into a localized message. The locale hint is
// best-effort; anything that is not English falls back to Norwegian bokmål.
type Formatter struct {
	locale      string
	highlighter Highlighter
}

func New(locale string, highlighter Highlighter) *Formatter {
	if highlighter == nil {
		highlighter = PlainHighlighter{}
	}

	normalized := "nb"
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		normalized = "en"
	}

	return &Formatter{locale: normalized, highlighter: highlighter}
}

func (f *Formatter) Format(v entity.Verdict) string {
	switch v.Category {
	case entity.VerdictOnTime:
		margin := f.highlighter.Paint(ToneGood, f.duration(v.Margin))
		if f.locale == "en" {
			return fmt.Sprintf("You will make the ferry with %s to spare.", margin)
		}

		return fmt.Sprintf("Du rekker ferga med %s margin.", margin)

	case entity.VerdictHurry:
		margin := f.highlighter.Paint(ToneUrgent, f.duration(v.Margin))
		if f.locale == "en" {
			return fmt.Sprintf("Hurry! Only %s to spare.", margin)
		}

		return fmt.Sprintf("Skynd deg! Bare %s margin.", margin)

	case entity.VerdictMissedShortWait:
		tone := ToneWarn
		if v.NextWait <= 5 {
			tone = ToneGood
		}
		wait := f.highlighter.Paint(tone, f.duration(v.NextWait))
		if f.locale == "en" {
			return fmt.Sprintf("The next ferry leaves in %s.", wait)
		}

		return fmt.Sprintf("Neste ferge går om %s.", wait)

	case entity.VerdictMissedMediumWait, entity.VerdictMissedLongWait:
		return f.missed(v)

	case entity.VerdictNoMoreToday:
		missedBy := f.duration(v.MissedBy)
		if f.locale == "en" {
			return fmt.Sprintf("You missed the ferry by %s. There are no more departures today.", missedBy)
		}

		return fmt.Sprintf("Du rakk ikke ferga, %s for seint. Det går ingen flere ferger i dag.", missedBy)
	}

	return ""
}

// missed renders the medium and long wait messages, which share shape. The
// long variant appends a suggested start time when one survived suppression.
func (f *Formatter) missed(v entity.Verdict) string {
	wait := f.highlighter.Paint(ToneWarn, f.duration(v.NextWait))

	var b strings.Builder
	if f.locale == "en" {
		if v.ShowMissedBy {
			fmt.Fprintf(&b, "You missed the ferry by %s. ", f.duration(v.MissedBy))
		} else {
			b.WriteString("You missed the ferry. ")
		}
		fmt.Fprintf(&b, "The next one leaves in %s.", wait)
		if v.SuggestedStart != nil {
			fmt.Fprintf(&b, " Leave at %s to catch it.", util.FormatClock(*v.SuggestedStart))
		}

		return b.String()
	}

	if v.ShowMissedBy {
		fmt.Fprintf(&b, "Du rakk ikke ferga, %s for seint. ", f.duration(v.MissedBy))
	} else {
		b.WriteString("Du rakk ikke ferga. ")
	}
	fmt.Fprintf(&b, "Neste går om %s.", wait)
	if v.SuggestedStart != nil {
		fmt.Fprintf(&b, " Dra kl. %s, så rekker du den.", util.FormatClock(*v.SuggestedStart))
	}

	return b.String()
}

// duration renders a minute count, switching to hours and minutes at the
// hour mark.
func (f *Formatter) duration(minutes int) string {
	hours, mins := util.SplitMinutes(minutes)
	if hours == 0 {
		return fmt.Sprintf("%d min", mins)
	}

	unit := "t"
	if f.locale == "en" {
		unit = "h"
	}

	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}

	return fmt.Sprintf("%d %s %d min", hours, unit, mins)
}
