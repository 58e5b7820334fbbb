package fleet

import (
	"context"
	"time"
)

// fakeProvider implements Provider over an in-memory map for tests.
type fakeProvider struct {
	instances map[string]Instance
	listErr   error

	startCalls     []string
	stopCalls      []string
	terminateCalls []string
}

func newFakeProvider(instances ...Instance) *fakeProvider {
	m := make(map[string]Instance, len(instances))
	for _, inst := range instances {
		m[inst.ID] = inst
	}
	return &fakeProvider{instances: m}
}

func (f *fakeProvider) Launch(_ context.Context, spec LaunchSpec) (Instance, error) {
	inst := Instance{
		ID:              "i-" + spec.Name,
		Name:            spec.Name,
		InstanceType:    spec.InstanceType,
		ImageID:         spec.ImageID,
		KeyPairName:     spec.KeyPairName,
		SecurityGroupID: spec.SecurityGroupID,
		Environment:     spec.Environment,
		Status:          StatusPending,
		LaunchTime:      time.Now(),
	}
	f.instances[inst.ID] = inst
	return inst, nil
}

func (f *fakeProvider) Describe(_ context.Context, id string) (Instance, error) {
	inst, ok := f.instances[id]
	if !ok {
		return Instance{}, &NotFoundError{ID: id}
	}
	return inst, nil
}

func (f *fakeProvider) List(_ context.Context) ([]Instance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Instance, 0, len(f.instances))
	for _, inst := range f.instances {
		out = append(out, inst)
	}
	return out, nil
}

func (f *fakeProvider) Start(_ context.Context, id string) error {
	f.startCalls = append(f.startCalls, id)
	return f.transition(id, StatusPending)
}

func (f *fakeProvider) Stop(_ context.Context, id string) error {
	f.stopCalls = append(f.stopCalls, id)
	return f.transition(id, StatusStopping)
}

func (f *fakeProvider) Terminate(_ context.Context, id string) error {
	f.terminateCalls = append(f.terminateCalls, id)
	return f.transition(id, StatusShuttingDown)
}

func (f *fakeProvider) transition(id string, to Status) error {
	inst, ok := f.instances[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	inst.Status = to
	f.instances[id] = inst
	return nil
}
