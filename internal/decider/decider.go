// Package decider scores options against a profile and picks one of them.
package decider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Arbiter/internal/config"
	"github.com/MikeSquared-Agency/Arbiter/internal/hermes"
	"github.com/MikeSquared-Agency/Arbiter/internal/metrics"
	"github.com/MikeSquared-Agency/Arbiter/internal/scoring"
	"github.com/MikeSquared-Agency/Arbiter/internal/store"
	"github.com/MikeSquared-Agency/Arbiter/pkg/choose"
	"github.com/MikeSquared-Agency/Arbiter/pkg/weighted"
)

// FallbackZeroWeights marks a fuzzy decision made strictly because the
// near-maximum weights summed to zero.
const FallbackZeroWeights = "strict: near-maximum weights sum to zero"

var (
	ErrUnknownProfile     = errors.New("unknown profile")
	ErrInvalidMode        = errors.New("invalid mode")
	ErrInvalidFuzziness   = errors.New("fuzziness must be in [0, 1]")
	ErrInvalidOffset      = errors.New("choice_offset must be finite")
	ErrInvalidOption      = errors.New("invalid option")
	ErrInvalidMeasurement = errors.New("measurements must be finite")
	ErrInvalidWeight      = errors.New("weights must be finite")
)

// Option is one alternative to score, with its raw measurements keyed by
// consideration name.
type Option struct {
	Name         string             `json:"name"`
	Measurements map[string]float64 `json:"measurements"`
}

// Request asks for a decision among Options using a configured profile.
// Mode, Fuzziness and ChoiceOffset override the profile when set.
type Request struct {
	Profile      string
	Options      []Option
	Mode         string
	Fuzziness    *float64
	ChoiceOffset *float64
	ClientID     string
}

// ChooseRequest asks for a selection among actions the caller already weighted.
type ChooseRequest struct {
	Actions      []weighted.Action[string]
	Mode         string
	Fuzziness    *float64
	ChoiceOffset *float64
	ClientID     string
}

// ProfileInfo describes a configured profile.
type ProfileInfo struct {
	Name           string                 `json:"name"`
	Mode           string                 `json:"mode"`
	Fuzziness      float64                `json:"fuzziness"`
	Considerations scoring.Considerations `json:"considerations"`
}

type profile struct {
	scorer    *scoring.Scorer
	mode      string
	fuzziness float64
}

// Decider runs decisions. The store and event client are optional; a nil
// value skips persistence or publishing.
type Decider struct {
	profiles map[string]profile
	defaults config.SelectionConfig
	store    store.Store
	hermes   hermes.Client
	offsets  OffsetSource
	logger   *slog.Logger
}

// New builds a scorer for every configured profile.
func New(cfg *config.Config, s store.Store, h hermes.Client, offsets OffsetSource, logger *slog.Logger) (*Decider, error) {
	d := &Decider{
		profiles: make(map[string]profile, len(cfg.Profiles)),
		defaults: cfg.Selection,
		store:    s,
		hermes:   h,
		offsets:  offsets,
		logger:   logger,
	}
	for name, p := range cfg.Profiles {
		sc, err := scoring.NewScorer(scoring.FromConfig(p.Considerations), logger.With("profile", name))
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		d.profiles[name] = profile{
			scorer:    sc,
			mode:      cfg.ModeFor(p),
			fuzziness: cfg.FuzzinessFor(p),
		}
	}
	return d, nil
}

// Profiles lists the configured profiles sorted by name.
func (d *Decider) Profiles() []ProfileInfo {
	out := make([]ProfileInfo, 0, len(d.profiles))
	for name, p := range d.profiles {
		out = append(out, ProfileInfo{
			Name:           name,
			Mode:           p.mode,
			Fuzziness:      p.fuzziness,
			Considerations: p.scorer.Considerations(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Decide scores every option with the profile's considerations and selects
// among the eligible ones. A decision with no eligible options is returned
// with Selected=false, not an error.
func (d *Decider) Decide(ctx context.Context, req Request) (*store.Decision, error) {
	name := req.Profile
	if name == "" {
		name = config.DefaultProfile
	}
	p, ok := d.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	mode, fuzziness, err := resolve(p.mode, p.fuzziness, req.Mode, req.Fuzziness, req.ChoiceOffset)
	if err != nil {
		return nil, err
	}
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	dec := &store.Decision{
		ID:         uuid.New(),
		Profile:    name,
		Mode:       mode,
		Fuzziness:  fuzziness,
		Candidates: make([]store.Candidate, 0, len(req.Options)),
		ClientID:   req.ClientID,
	}
	var actions []weighted.Action[string]
	for _, opt := range req.Options {
		r := p.scorer.Score(opt.Name, opt.Measurements)
		dec.Candidates = append(dec.Candidates, store.Candidate{
			Name:     opt.Name,
			Weight:   r.TotalScore,
			Eligible: r.Eligible,
			Factors:  r.Factors,
		})
		if r.Eligible {
			actions = append(actions, weighted.New(opt.Name, r.TotalScore))
		}
	}

	if err := d.finish(ctx, dec, actions, req.ChoiceOffset); err != nil {
		return nil, err
	}
	return dec, nil
}

// Choose selects among caller-weighted actions without any profile scoring.
func (d *Decider) Choose(ctx context.Context, req ChooseRequest) (*store.Decision, error) {
	mode, fuzziness, err := resolve(d.defaults.DefaultMode, d.defaults.DefaultFuzziness, req.Mode, req.Fuzziness, req.ChoiceOffset)
	if err != nil {
		return nil, err
	}
	dec := &store.Decision{
		ID:         uuid.New(),
		Mode:       mode,
		Fuzziness:  fuzziness,
		Candidates: make([]store.Candidate, 0, len(req.Actions)),
		ClientID:   req.ClientID,
	}
	for _, a := range req.Actions {
		if !finite(a.Weight) {
			return nil, fmt.Errorf("%w: action %q", ErrInvalidWeight, a.Action)
		}
		dec.Candidates = append(dec.Candidates, store.Candidate{Name: a.Action, Weight: a.Weight, Eligible: true})
	}

	if err := d.finish(ctx, dec, req.Actions, req.ChoiceOffset); err != nil {
		return nil, err
	}
	return dec, nil
}

// finish selects, then records metrics, persists and publishes the decision.
func (d *Decider) finish(ctx context.Context, dec *store.Decision, actions []weighted.Action[string], offset *float64) error {
	var chosen string
	var ok bool
	switch dec.Mode {
	case config.ModeStrict:
		chosen, ok = choose.Best(actions)
	default:
		o := d.offset(offset)
		dec.ChoiceOffset = &o
		if len(actions) > 0 && nearMaxTotal(actions, dec.Fuzziness) == 0 {
			// every share would be 0/0 and no offset could land
			dec.Fallback = FallbackZeroWeights
			d.logger.Info("near-maximum weights sum to zero, choosing strictly", "decision_id", dec.ID)
			chosen, ok = choose.Best(actions)
		} else {
			chosen, ok = choose.Fuzzy(actions, dec.Fuzziness, o)
		}
	}
	dec.Chosen = chosen
	dec.Selected = ok

	weight := chosenWeight(actions, chosen, ok)
	metrics.ObserveDecision(dec.Mode, len(actions), ok, weight)

	if d.store != nil {
		if err := d.store.CreateDecision(ctx, dec); err != nil {
			return fmt.Errorf("persist decision: %w", err)
		}
	} else {
		dec.CreatedAt = time.Now().UTC()
	}

	if d.hermes != nil {
		evt := hermes.DecisionEvent{
			DecisionID: dec.ID.String(),
			Profile:    dec.Profile,
			Mode:       dec.Mode,
			Chosen:     dec.Chosen,
			Selected:   dec.Selected,
			Weight:     weight,
			Candidates: len(dec.Candidates),
			Timestamp:  dec.CreatedAt,
		}
		if err := hermes.PublishDecision(ctx, d.hermes, evt); err != nil {
			d.logger.Warn("failed to publish decision", "decision_id", dec.ID, "error", err)
		}
	}

	d.logger.Info("decision made", "decision_id", dec.ID, "profile", dec.Profile, "mode", dec.Mode,
		"selected", dec.Selected, "chosen", dec.Chosen, "weight", weight, "eligible", len(actions))
	return nil
}

func (d *Decider) offset(requested *float64) float64 {
	if requested != nil {
		return *requested
	}
	return d.offsets.Offset()
}

// resolve applies request overrides on top of the profile's mode and fuzziness.
func resolve(mode string, fuzziness float64, reqMode string, reqFuzziness, reqOffset *float64) (string, float64, error) {
	if reqMode != "" {
		mode = reqMode
	}
	if mode != config.ModeStrict && mode != config.ModeFuzzy {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if reqFuzziness != nil {
		fuzziness = *reqFuzziness
	}
	if !(fuzziness >= 0 && fuzziness <= 1) {
		return "", 0, fmt.Errorf("%w: got %v", ErrInvalidFuzziness, fuzziness)
	}
	if reqOffset != nil && !finite(*reqOffset) {
		return "", 0, ErrInvalidOffset
	}
	return mode, fuzziness, nil
}

func validateOptions(opts []Option) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o.Name == "" {
			return fmt.Errorf("%w: name required", ErrInvalidOption)
		}
		if seen[o.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidOption, o.Name)
		}
		seen[o.Name] = true
		for k, v := range o.Measurements {
			if !finite(v) {
				return fmt.Errorf("%w: option %q measurement %q", ErrInvalidMeasurement, o.Name, k)
			}
		}
	}
	return nil
}

// nearMaxTotal sums the weights within fuzziness of the largest, the set a
// fuzzy choice shares the offset across.
func nearMaxTotal(actions []weighted.Action[string], fuzziness float64) float64 {
	greatest := math.Inf(-1)
	for _, a := range actions {
		if a.Weight > greatest {
			greatest = a.Weight
		}
	}
	var total float64
	for _, a := range actions {
		if greatest-a.Weight <= fuzziness {
			total += a.Weight
		}
	}
	return total
}

// chosenWeight returns the highest weight carried by the chosen action.
func chosenWeight(actions []weighted.Action[string], chosen string, ok bool) float64 {
	if !ok {
		return 0
	}
	w := math.Inf(-1)
	for _, a := range actions {
		if a.Action == chosen && a.Weight > w {
			w = a.Weight
		}
	}
	return w
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
