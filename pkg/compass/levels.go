package compass

import (
	"fmt"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

// Number of attributes on each level.
const (
	NumInner = 11
	NumOuter = 15
)

// TriState is the value of an inner level attribute.
type TriState int

// Inner level values. The numeric value selects the anchor ring in the
// template (D<i>-0, D<i>-1, D<i>-2).
const (
	None         TriState = 0
	Supervised   TriState = 1
	Unsupervised TriState = 2
)

// Valid reports whether t is one of None, Supervised or Unsupervised.
func (t TriState) Valid() bool {
	return t >= None && t <= Unsupervised
}

func (t TriState) String() string {
	switch t {
	case None:
		return "none"
	case Supervised:
		return "supervised"
	case Unsupervised:
		return "unsupervised"
	default:
		return fmt.Sprintf("TriState(%d)", int(t))
	}
}

// InnerAttributes is the fixed order of inner level attributes. It matches the
// coordinate labels D1..D11 of the compass template.
var InnerAttributes = [NumInner]string{
	"multiple_models",
	"federated",
	"online",
	"open_world",
	"multiple_modalities",
	"active_data_query",
	"task_order_discovery",
	"task_agnostic",
	"episodic_memory",
	"generative",
	"uncertainty",
}

// OuterAttributes is the declaration order of outer level attributes, used
// when entries are serialised.
var OuterAttributes = [NumOuter]string{
	"compute_time",
	"mac_operations",
	"communication",
	"forgetting",
	"forward_transfer",
	"backward_transfer",
	"openness",
	"parameters",
	"memory",
	"stored_data",
	"generated_data",
	"optimization_steps",
	"per_task_metric",
	"task_order",
	"data_per_task",
}

// OuterSlots assigns outer level attributes to the 15 angular slots of the
// outer ring, starting at slot 0. It deliberately differs from
// OuterAttributes.
var OuterSlots = [NumOuter]string{
	"parameters",
	"compute_time",
	"mac_operations",
	"communication",
	"forgetting",
	"forward_transfer",
	"backward_transfer",
	"openness",
	"data_per_task",
	"task_order",
	"per_task_metric",
	"optimization_steps",
	"generated_data",
	"stored_data",
	"memory",
}

var (
	innerIndex = indexOf(InnerAttributes[:])
	outerIndex = indexOf(OuterAttributes[:])
)

func indexOf(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

// InnerLevel holds the method attributes of the inner compass level.
type InnerLevel struct {
	MultipleModels     TriState `json:"multiple_models" validate:"min=0,max=2"`
	Federated          TriState `json:"federated" validate:"min=0,max=2"`
	Online             TriState `json:"online" validate:"min=0,max=2"`
	OpenWorld          TriState `json:"open_world" validate:"min=0,max=2"`
	MultipleModalities TriState `json:"multiple_modalities" validate:"min=0,max=2"`
	ActiveDataQuery    TriState `json:"active_data_query" validate:"min=0,max=2"`
	TaskOrderDiscovery TriState `json:"task_order_discovery" validate:"min=0,max=2"`
	TaskAgnostic       TriState `json:"task_agnostic" validate:"min=0,max=2"`
	EpisodicMemory     TriState `json:"episodic_memory" validate:"min=0,max=2"`
	Generative         TriState `json:"generative" validate:"min=0,max=2"`
	Uncertainty        TriState `json:"uncertainty" validate:"min=0,max=2"`
}

// fields returns pointers to the attributes in InnerAttributes order.
func (l *InnerLevel) fields() [NumInner]*TriState {
	return [NumInner]*TriState{
		&l.MultipleModels,
		&l.Federated,
		&l.Online,
		&l.OpenWorld,
		&l.MultipleModalities,
		&l.ActiveDataQuery,
		&l.TaskOrderDiscovery,
		&l.TaskAgnostic,
		&l.EpisodicMemory,
		&l.Generative,
		&l.Uncertainty,
	}
}

// Values returns the attribute values in InnerAttributes order.
func (l InnerLevel) Values() [NumInner]TriState {
	var out [NumInner]TriState
	for i, p := range l.fields() {
		out[i] = *p
	}
	return out
}

// Get returns the value of the named attribute.
func (l InnerLevel) Get(name string) (TriState, error) {
	i, ok := innerIndex[name]
	if !ok {
		return None, errors.New(errors.ErrCodeInvalidInput, "unknown inner level attribute %q", name)
	}
	return *l.fields()[i], nil
}

// Set assigns the named attribute.
func (l *InnerLevel) Set(name string, v TriState) error {
	i, ok := innerIndex[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown inner level attribute %q", name)
	}
	if !v.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "inner level %s: value %d out of range 0..2", name, int(v))
	}
	*l.fields()[i] = v
	return nil
}

// OuterLevel holds the measurement attributes of the outer compass level.
// Fields are declared in OuterAttributes order.
type OuterLevel struct {
	ComputeTime       bool `json:"compute_time"`
	MACOperations     bool `json:"mac_operations"`
	Communication     bool `json:"communication"`
	Forgetting        bool `json:"forgetting"`
	ForwardTransfer   bool `json:"forward_transfer"`
	BackwardTransfer  bool `json:"backward_transfer"`
	Openness          bool `json:"openness"`
	Parameters        bool `json:"parameters"`
	Memory            bool `json:"memory"`
	StoredData        bool `json:"stored_data"`
	GeneratedData     bool `json:"generated_data"`
	OptimizationSteps bool `json:"optimization_steps"`
	PerTaskMetric     bool `json:"per_task_metric"`
	TaskOrder         bool `json:"task_order"`
	DataPerTask       bool `json:"data_per_task"`
}

// fields returns pointers to the attributes in OuterAttributes order.
func (l *OuterLevel) fields() [NumOuter]*bool {
	return [NumOuter]*bool{
		&l.ComputeTime,
		&l.MACOperations,
		&l.Communication,
		&l.Forgetting,
		&l.ForwardTransfer,
		&l.BackwardTransfer,
		&l.Openness,
		&l.Parameters,
		&l.Memory,
		&l.StoredData,
		&l.GeneratedData,
		&l.OptimizationSteps,
		&l.PerTaskMetric,
		&l.TaskOrder,
		&l.DataPerTask,
	}
}

// Values returns the attribute values in OuterAttributes order.
func (l OuterLevel) Values() [NumOuter]bool {
	var out [NumOuter]bool
	for i, p := range l.fields() {
		out[i] = *p
	}
	return out
}

// Slots returns the attribute values in OuterSlots order, so that index s is
// the value drawn in slot s of the outer ring.
func (l OuterLevel) Slots() [NumOuter]bool {
	f := l.fields()
	var out [NumOuter]bool
	for s, name := range OuterSlots {
		out[s] = *f[outerIndex[name]]
	}
	return out
}

// Count returns the number of attributes that are set.
func (l OuterLevel) Count() int {
	n := 0
	for _, v := range l.Values() {
		if v {
			n++
		}
	}
	return n
}

// Get returns the value of the named attribute.
func (l OuterLevel) Get(name string) (bool, error) {
	i, ok := outerIndex[name]
	if !ok {
		return false, errors.New(errors.ErrCodeInvalidInput, "unknown outer level attribute %q", name)
	}
	return *l.fields()[i], nil
}

// Set assigns the named attribute.
func (l *OuterLevel) Set(name string, v bool) error {
	i, ok := outerIndex[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown outer level attribute %q", name)
	}
	*l.fields()[i] = v
	return nil
}
