package fleet

import (
	"context"

	"github.com/rs/zerolog"
)

// Orchestrator enforces legal status transitions and shapes operation
// results. It owns no state; correctness of concurrent transitions on the
// same instance is the provider's concurrency control, not ours.
type Orchestrator struct {
	provider Provider
	logger   zerolog.Logger
}

// NewOrchestrator creates an orchestrator over the given provider.
func NewOrchestrator(provider Provider, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{provider: provider, logger: logger}
}

// Launch submits a creation request and returns the new instance in its
// initial status, normally pending. Convergence to running is observed by
// later reads; nothing here polls for it.
func (o *Orchestrator) Launch(ctx context.Context, spec LaunchSpec) (Instance, error) {
	inst, err := o.provider.Launch(ctx, spec)
	if err != nil {
		return Instance{}, err
	}

	o.logger.Info().
		Str("instance_id", inst.ID).
		Str("instance_type", inst.InstanceType).
		Str("environment", inst.Environment).
		Msg("instance launched")
	return inst, nil
}

// Start transitions a stopped instance toward running. Any other current
// status is an InvalidStateError and no transition call is issued.
func (o *Orchestrator) Start(ctx context.Context, id string) (Instance, error) {
	current, err := o.provider.Describe(ctx, id)
	if err != nil {
		return Instance{}, err
	}
	if current.Status != StatusStopped {
		return Instance{}, &InvalidStateError{Op: "start", ID: id, Current: current.Status, Required: StatusStopped}
	}

	if err := o.provider.Start(ctx, id); err != nil {
		return Instance{}, err
	}

	inst, err := o.provider.Describe(ctx, id)
	if err != nil {
		return Instance{}, err
	}
	o.logger.Info().Str("instance_id", id).Str("status", inst.Status.String()).Msg("instance starting")
	return inst, nil
}

// Stop transitions a running instance toward stopped. Any other current
// status is an InvalidStateError and no transition call is issued.
func (o *Orchestrator) Stop(ctx context.Context, id string) (Instance, error) {
	current, err := o.provider.Describe(ctx, id)
	if err != nil {
		return Instance{}, err
	}
	if current.Status != StatusRunning {
		return Instance{}, &InvalidStateError{Op: "stop", ID: id, Current: current.Status, Required: StatusRunning}
	}

	if err := o.provider.Stop(ctx, id); err != nil {
		return Instance{}, err
	}

	inst, err := o.provider.Describe(ctx, id)
	if err != nil {
		return Instance{}, err
	}
	o.logger.Info().Str("instance_id", id).Str("status", inst.Status.String()).Msg("instance stopping")
	return inst, nil
}

// Terminate transitions an instance toward terminated. The describe up front
// turns an unknown id into NotFoundError; beyond that, terminating an
// already-terminated instance is whatever the provider makes of it.
func (o *Orchestrator) Terminate(ctx context.Context, id string) (Instance, error) {
	if _, err := o.provider.Describe(ctx, id); err != nil {
		return Instance{}, err
	}

	if err := o.provider.Terminate(ctx, id); err != nil {
		return Instance{}, err
	}

	inst, err := o.provider.Describe(ctx, id)
	if err != nil {
		return Instance{}, err
	}
	o.logger.Info().Str("instance_id", id).Str("status", inst.Status.String()).Msg("instance terminating")
	return inst, nil
}
