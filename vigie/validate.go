// CLAUDE:SUMMARY Input validation: tracked query fields, observation input, window/limit bounds.
package vigie

import (
	"fmt"
)

const (
	maxQueryTextLen = 512
	maxLocaleLen    = 16
	maxPayloadBytes = 1 << 20 // 1 MiB raw payload cap
	maxPanelTextLen = 16_384
)

// allowedDevices is the set of valid device classes.
var allowedDevices = map[string]bool{
	"desktop": true,
	"mobile":  true,
	"tablet":  true,
}

// validateQueryInput validates a tracked query's mutable fields before
// insert or update.
func validateQueryInput(q *TrackedQuery) error {
	if q.QueryText == "" {
		return fmt.Errorf("%w: query_text is required", ErrInvalidInput)
	}
	if len(q.QueryText) > maxQueryTextLen {
		return fmt.Errorf("%w: query_text exceeds %d characters", ErrInvalidInput, maxQueryTextLen)
	}
	if len(q.Locale) > maxLocaleLen {
		return fmt.Errorf("%w: locale exceeds %d characters", ErrInvalidInput, maxLocaleLen)
	}
	if q.Device != "" && !allowedDevices[q.Device] {
		return fmt.Errorf("%w: unknown device %q", ErrInvalidInput, q.Device)
	}
	return nil
}

// validateObservationInput validates an observation before it is appended.
// The raw payload itself is not schema-checked here: a payload matching no
// provider shape is a legal ledger entry that extraction degrades on.
func validateObservationInput(o *Observation) error {
	if o.CapturedAt <= 0 {
		return fmt.Errorf("%w: captured_at is required", ErrInvalidInput)
	}
	if o.ValidAsOf < 0 {
		return fmt.Errorf("%w: valid_as_of must not be negative", ErrInvalidInput)
	}
	if len(o.RawPayload) > maxPayloadBytes {
		return fmt.Errorf("%w: raw_payload exceeds %d bytes", ErrInvalidInput, maxPayloadBytes)
	}
	switch o.AIPanel {
	case "", AIPanelPresent, AIPanelAbsent, AIPanelParseError:
	default:
		return fmt.Errorf("%w: ai_panel must be present, absent or parse_error", ErrInvalidInput)
	}
	if len(o.AIPanelText) > maxPanelTextLen {
		return fmt.Errorf("%w: ai_panel_text exceeds %d characters", ErrInvalidInput, maxPanelTextLen)
	}
	return nil
}

// resolveWindowDays validates an optional window parameter. 0 means omitted
// and resolves to the default; anything else must fall in [1, max].
func (s *Service) resolveWindowDays(days int) (int, error) {
	if days == 0 {
		return s.cfg.DefaultWindowDays, nil
	}
	if days < 1 || days > s.cfg.MaxWindowDays {
		return 0, fmt.Errorf("%w: window must be between 1 and %d days", ErrInvalidInput, s.cfg.MaxWindowDays)
	}
	return days, nil
}

// resolvePressureWindowDays validates the mandatory competitive-pressure
// window: required, and more narrowly bounded than the optional windows.
func (s *Service) resolvePressureWindowDays(days int) (int, error) {
	if days == 0 {
		return 0, ErrWindowRequired
	}
	if days < 1 || days > s.cfg.MaxPressureWindowDays {
		return 0, fmt.Errorf("%w: window must be between 1 and %d days", ErrInvalidInput, s.cfg.MaxPressureWindowDays)
	}
	return days, nil
}

// resolveLimit validates an optional result-count limit. 0 means omitted.
func (s *Service) resolveLimit(limit int) (int, error) {
	if limit == 0 {
		return s.cfg.DefaultLimit, nil
	}
	if limit < 1 || limit > s.cfg.MaxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, s.cfg.MaxLimit)
	}
	return limit, nil
}
