package stepper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formcode/pkg/model"
	"github.com/goliatone/go-formcode/pkg/schema"
)

const (
	// DefaultKeyPrefix namespaces persisted progress.
	DefaultKeyPrefix = "multi-step-form-progress"
	// DefaultMaxAge is how long saved progress stays resumable.
	DefaultMaxAge = 24 * time.Hour
)

var (
	ErrNoSteps     = errors.New("stepper: at least one step is required")
	ErrOutOfRange  = errors.New("stepper: step index out of range")
	ErrStepLocked  = errors.New("stepper: step is not reachable yet")
	ErrFirstStep   = errors.New("stepper: already on the first step")
	ErrLastStep    = errors.New("stepper: already on the last step")
	ErrInvalidStep = errors.New("stepper: step has validation issues")
)

// Progress is the persisted position of a machine. SavedAt is stored as Unix
// milliseconds.
type Progress struct {
	Current   int       `json:"currentStep"`
	Completed []int     `json:"completedSteps"`
	SavedAt   time.Time `json:"-"`
}

type wireProgress struct {
	Current   int   `json:"currentStep"`
	Completed []int `json:"completedSteps"`
	Timestamp int64 `json:"timestamp"`
}

// MarshalJSON implements json.Marshaler.
func (p Progress) MarshalJSON() ([]byte, error) {
	completed := p.Completed
	if completed == nil {
		completed = []int{}
	}
	return json.Marshal(wireProgress{Current: p.Current, Completed: completed, Timestamp: p.SavedAt.UnixMilli()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Progress) UnmarshalJSON(data []byte) error {
	var wire wireProgress
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Timestamp <= 0 {
		return fmt.Errorf("stepper: progress timestamp missing")
	}
	p.Current = wire.Current
	p.Completed = wire.Completed
	p.SavedAt = time.UnixMilli(wire.Timestamp)
	return nil
}

// Option configures a Machine.
type Option func(*Machine)

// WithStore persists progress in store.
func WithStore(store Store) Option {
	return func(m *Machine) {
		m.store = store
	}
}

// WithFormID scopes the persisted key to one form.
func WithFormID(id string) Option {
	return func(m *Machine) {
		m.formID = strings.TrimSpace(id)
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(m *Machine) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			m.prefix = trimmed
		}
	}
}

// WithMaxAge overrides DefaultMaxAge.
func WithMaxAge(age time.Duration) Option {
	return func(m *Machine) {
		if age > 0 {
			m.maxAge = age
		}
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithErrorHandler receives store failures, which never interrupt navigation.
func WithErrorHandler(fn func(error)) Option {
	return func(m *Machine) {
		m.onError = fn
	}
}

// Machine walks an ordered list of steps. It is safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	steps     []Step
	schema    schema.Object
	current   int
	completed map[int]struct{}

	store   Store
	formID  string
	prefix  string
	maxAge  time.Duration
	now     func() time.Time
	onError func(error)
}

// New constructs a machine positioned on the first step. Field names must be
// unique across all steps.
func New(steps []Step, options ...Option) (*Machine, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	var all []model.Entry
	for _, step := range steps {
		all = append(all, step.Entries...)
	}
	if err := model.Validate(all); err != nil {
		return nil, fmt.Errorf("stepper: %w", err)
	}

	m := &Machine{
		steps:     append([]Step(nil), steps...),
		schema:    schema.Infer(all),
		completed: make(map[int]struct{}),
		prefix:    DefaultKeyPrefix,
		maxAge:    DefaultMaxAge,
		now:       time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// NewFromForm builds a machine from a form definition's steps.
func NewFromForm(form model.Form, options ...Option) (*Machine, error) {
	return New(StepsFromForm(form), options...)
}

// Key returns the store key of this machine's progress.
func (m *Machine) Key() string {
	if m.formID == "" {
		return m.prefix
	}
	return m.prefix + ":" + m.formID
}

// Restore loads saved progress. It reports whether a saved position was
// applied; corrupt, out of range or stale progress is discarded.
func (m *Machine) Restore(ctx context.Context) bool {
	if m.store == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok, err := m.store.Get(ctx, m.Key())
	if err != nil {
		m.report(err)
		return false
	}
	if !ok {
		return false
	}

	var progress Progress
	if err := json.Unmarshal(raw, &progress); err != nil || !m.valid(progress) {
		m.clear(ctx)
		return false
	}
	if m.now().Sub(progress.SavedAt) > m.maxAge {
		m.clear(ctx)
		return false
	}

	m.current = progress.Current
	m.completed = make(map[int]struct{}, len(progress.Completed))
	for _, idx := range progress.Completed {
		m.completed[idx] = struct{}{}
	}
	return true
}

func (m *Machine) valid(p Progress) bool {
	if p.Current < 0 || p.Current >= len(m.steps) {
		return false
	}
	for _, idx := range p.Completed {
		if idx < 0 || idx >= len(m.steps) {
			return false
		}
	}
	return true
}

// Len returns the number of steps.
func (m *Machine) Len() int {
	return len(m.steps)
}

// Steps returns a copy of the steps.
func (m *Machine) Steps() []Step {
	return append([]Step(nil), m.steps...)
}

// Index returns the current step index.
func (m *Machine) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Current returns the current step.
func (m *Machine) Current() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps[m.current]
}

// IsFirst reports whether the machine is on the first step.
func (m *Machine) IsFirst() bool {
	return m.Index() == 0
}

// IsLast reports whether the machine is on the last step.
func (m *Machine) IsLast() bool {
	return m.Index() == len(m.steps)-1
}

// Completed returns the completed step indexes in ascending order.
func (m *Machine) Completed() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completedList()
}

// IsCompleted reports whether step i was completed.
func (m *Machine) IsCompleted(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.completed[i]
	return ok
}

// Snapshot returns the current progress.
func (m *Machine) Snapshot() Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Progress{Current: m.current, Completed: m.completedList(), SavedAt: m.now()}
}

// StepSchema returns the validation schema restricted to step i's fields.
func (m *Machine) StepSchema(i int) (schema.Object, error) {
	if i < 0 || i >= len(m.steps) {
		return schema.Object{}, ErrOutOfRange
	}
	return m.schema.Pick(m.steps[i].Names()...), nil
}

// Validate checks values against the current step's fields, regardless of
// its policy.
func (m *Machine) Validate(values map[string]any) schema.Issues {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schema.Pick(m.steps[m.current].Names()...).Validate(values)
}

// Next validates the current step when its policy is ValidateOnNext, marks it
// completed and advances. Validation failures are returned as issues wrapped
// in ErrInvalidStep; the machine stays put.
func (m *Machine) Next(ctx context.Context, values map[string]any) (schema.Issues, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current >= len(m.steps)-1 {
		return nil, ErrLastStep
	}
	step := m.steps[m.current]
	if step.Policy == ValidateOnNext || step.Policy == "" {
		if issues := m.schema.Pick(step.Names()...).Validate(values); len(issues) > 0 {
			return issues, fmt.Errorf("%w: %s", ErrInvalidStep, step.ID)
		}
	}
	m.completed[m.current] = struct{}{}
	m.current++
	m.persist(ctx)
	return nil, nil
}

// Prev moves back one step without validating.
func (m *Machine) Prev(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == 0 {
		return ErrFirstStep
	}
	m.current--
	m.persist(ctx)
	return nil
}

// JumpTo moves to step i when it is earlier than the current step or already
// completed.
func (m *Machine) JumpTo(ctx context.Context, i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i < 0 || i >= len(m.steps) {
		return ErrOutOfRange
	}
	if _, done := m.completed[i]; !done && i > m.current {
		return ErrStepLocked
	}
	m.current = i
	m.persist(ctx)
	return nil
}

// Submit validates every step whose policy is not NoValidation and returns
// the parsed values. On failure the machine moves to the first failing step.
// On success all steps are marked completed and saved progress is cleared.
func (m *Machine) Submit(ctx context.Context, values map[string]any) (map[string]any, schema.Issues, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var checked, unchecked []string
	failing := -1
	var issues schema.Issues
	for i, step := range m.steps {
		if step.Policy == NoValidation {
			unchecked = append(unchecked, step.Names()...)
			continue
		}
		stepIssues := m.schema.Pick(step.Names()...).Validate(values)
		if len(stepIssues) > 0 && failing < 0 {
			failing = i
		}
		issues = append(issues, stepIssues...)
		checked = append(checked, step.Names()...)
	}
	if len(issues) > 0 {
		m.current = failing
		m.persist(ctx)
		return nil, issues, fmt.Errorf("%w: %s", ErrInvalidStep, m.steps[failing].ID)
	}

	out, _ := m.schema.Pick(checked...).Parse(values)
	for _, name := range unchecked {
		if value, ok := values[name]; ok {
			out[name] = value
		}
	}
	for i := range m.steps {
		m.completed[i] = struct{}{}
	}
	m.clear(ctx)
	return out, nil, nil
}

// Reset returns to the first step and clears saved progress.
func (m *Machine) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = 0
	m.completed = make(map[int]struct{})
	m.clear(ctx)
}

func (m *Machine) completedList() []int {
	out := make([]int, 0, len(m.completed))
	for idx := range m.completed {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func (m *Machine) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	raw, err := json.Marshal(Progress{Current: m.current, Completed: m.completedList(), SavedAt: m.now()})
	if err != nil {
		m.report(err)
		return
	}
	if err := m.store.Set(ctx, m.Key(), raw); err != nil {
		m.report(err)
	}
}

func (m *Machine) clear(ctx context.Context) {
	if m.store == nil {
		return
	}
	if err := m.store.Clear(ctx, m.Key()); err != nil {
		m.report(err)
	}
}

func (m *Machine) report(err error) {
	if m.onError != nil && err != nil {
		m.onError(err)
	}
}
