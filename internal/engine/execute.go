package engine

import (
	"context"
	"sync"
	"time"

	"github.com/reapr-io/reapr/internal/logging"
	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

const defaultParallelism = 10

// Result records the terminal outcome of one resource's deletion attempt.
type Result struct {
	Resource *resource.Resource
	Attempts int
	Duration time.Duration
	Err      error
	Warning  string
}

// Event represents a progress event during execution.
type Event struct {
	Resource *resource.Resource
	Status   string // "started", "deleted", "failed"
	Duration time.Duration
	Err      error
}

// EventCallback is called for each execution event if set.
type EventCallback func(event Event)

// Executor walks the ordered deletion groups: strictly sequential across
// groups, worker-pool parallel within a group. A failing resource never
// aborts the run; it is recorded and its siblings proceed.
type Executor struct {
	provider    provider.CloudProvider
	policy      *RetryPolicy
	parallelism int
	callback    EventCallback
}

// NewExecutor builds an executor. A nil policy selects the default retry
// policy; parallelism <= 0 selects the default worker count.
func NewExecutor(p provider.CloudProvider, policy *RetryPolicy, parallelism int) *Executor {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &Executor{provider: p, policy: policy, parallelism: parallelism}
}

// OnEvent registers a progress callback.
func (e *Executor) OnEvent(cb EventCallback) {
	e.callback = cb
}

func (e *Executor) emit(event Event) {
	if e.callback != nil {
		e.callback(event)
	}
}

// Execute deletes every resource in the given groups, group by group.
// Results come back in group-then-ID order, one per resource.
func (e *Executor) Execute(ctx context.Context, groups []resource.Group) []Result {
	var results []Result
	failedEarlier := false

	for _, group := range groups {
		var warning string
		if group.Type == resource.TypeVpc && failedEarlier {
			// The provider will reject the VPC delete while a failed
			// dependent still dangles; attempt it anyway and flag it.
			warning = "earlier group has failed resources; VPC deletion is best-effort"
			logging.Warn("attempting VPC deletion with failed siblings", "type", group.Type)
		}

		groupResults := e.executeGroup(ctx, group, warning)
		for _, res := range groupResults {
			if res.Resource.State == resource.StateFailed {
				failedEarlier = true
			}
		}
		results = append(results, groupResults...)
	}

	return results
}

// executeGroup deletes all resources of one type. Within a group there is no
// ordering dependency, so deletions run on a bounded worker pool.
func (e *Executor) executeGroup(ctx context.Context, group resource.Group, warning string) []Result {
	results := make([]Result, len(group.Resources))
	sem := make(chan struct{}, e.parallelism)
	var wg sync.WaitGroup

	for i, res := range group.Resources {
		wg.Add(1)
		go func(i int, res *resource.Resource) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := e.deleteOne(ctx, res)
			result.Warning = warning
			results[i] = result
		}(i, res)
	}

	wg.Wait()
	return results
}

// deleteOne drives a single resource to a terminal state.
func (e *Executor) deleteOne(ctx context.Context, res *resource.Resource) Result {
	start := time.Now()
	res.State = resource.StateDeletionRequested
	e.emit(Event{Resource: res, Status: "started"})

	attempts := 0
	retryable := func(err error) bool {
		switch provider.KindOf(err) {
		case provider.KindConflict, provider.KindTransient:
			return true
		}
		return false
	}

	// Rule stripping first for security groups; the provider refuses to
	// delete a group still referenced by rules on other groups.
	if res.Type == resource.TypeSecurityGroup {
		err := RetryWithBackoff(ctx, e.policy, func() error {
			stripErr := e.provider.StripSecurityGroupRules(ctx, res)
			if provider.IsNotFound(stripErr) {
				return nil
			}
			return stripErr
		}, retryable)
		if err != nil {
			logging.Warn("failed to strip security group rules",
				"id", res.ID, "error", err)
		}
	}

	err := RetryWithBackoff(ctx, e.policy, func() error {
		attempts++
		deleteErr := e.provider.Delete(ctx, res)
		if provider.IsNotFound(deleteErr) {
			// Already gone. Idempotent success.
			return nil
		}
		return deleteErr
	}, retryable)

	duration := time.Since(start)
	if err != nil {
		res.State = resource.StateFailed
		logging.Error("delete failed", "type", res.Type, "id", res.ID,
			"attempts", attempts, "error", err)
		e.emit(Event{Resource: res, Status: "failed", Duration: duration, Err: err})
		return Result{Resource: res, Attempts: attempts, Duration: duration, Err: err}
	}

	res.State = resource.StateDeleted
	logging.Debug("delete succeeded", "type", res.Type, "id", res.ID, "attempts", attempts)
	e.emit(Event{Resource: res, Status: "deleted", Duration: duration})
	return Result{Resource: res, Attempts: attempts, Duration: duration}
}
