// Package fake is a deterministic in-memory cloud provider. It backs the
// engine, discovery and CLI tests so the full pipeline runs without live
// cloud access.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

type entry struct {
	res          *resource.Resource
	vpcID        string
	exists       bool
	deleteErrs   []error // consumed one per delete call
	lingerChecks int     // existence checks that still succeed after deletion
}

// Provider implements provider.CloudProvider over scripted in-memory state.
type Provider struct {
	mu       sync.Mutex
	entries  map[string]*entry
	listErrs map[resource.Type]error

	deleteCalls []string
	stripCalls  []string
	existsCalls []string
}

func New() *Provider {
	return &Provider{
		entries:  make(map[string]*entry),
		listErrs: make(map[resource.Type]error),
	}
}

func (p *Provider) Name() string { return "fake" }

func key(t resource.Type, id string) string {
	return fmt.Sprintf("%s/%s", t, id)
}

// Seed registers a live resource. A copy is kept; discovery hands back fresh
// Resource values the way a real provider would.
func (p *Provider) Seed(resources ...*resource.Resource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, res := range resources {
		copied := *res
		p.entries[key(res.Type, res.ID)] = &entry{res: &copied, exists: true}
	}
}

// SeedInVpc registers a live resource attached to the given VPC.
func (p *Provider) SeedInVpc(vpcID string, res *resource.Resource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := *res
	p.entries[key(res.Type, res.ID)] = &entry{res: &copied, vpcID: vpcID, exists: true}
}

// FailDelete scripts errors for the next delete calls against a resource.
// Once the scripted errors run out, deletion succeeds.
func (p *Provider) FailDelete(t resource.Type, id string, errs ...error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[key(t, id)]; ok {
		e.deleteErrs = append(e.deleteErrs, errs...)
	}
}

// Linger makes a resource keep answering existence checks for n more checks
// after its deletion succeeded, simulating provider-side deletion latency.
func (p *Provider) Linger(t resource.Type, id string, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[key(t, id)]; ok {
		e.lingerChecks = n
	}
}

// FailList scripts a discovery error for one resource type.
func (p *Provider) FailList(t resource.Type, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listErrs[t] = err
}

// DeleteCalls returns every delete call in issue order as "Type/id".
func (p *Provider) DeleteCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.deleteCalls...)
}

// StripCalls returns every rule-strip call in issue order.
func (p *Provider) StripCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.stripCalls...)
}

// ExistsCalls returns every existence check in issue order.
func (p *Provider) ExistsCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.existsCalls...)
}

func (p *Provider) List(ctx context.Context, t resource.Type, clusterTag, region string) ([]*resource.Resource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.listErrs[t]; err != nil {
		return nil, err
	}
	var found []*resource.Resource
	for _, e := range p.entries {
		if !e.exists || e.res.Type != t || e.res.ClusterTag != clusterTag {
			continue
		}
		copied := *e.res
		copied.State = resource.StateDiscovered
		found = append(found, &copied)
	}
	return found, nil
}

func (p *Provider) ListByVpc(ctx context.Context, t resource.Type, vpcID, region string) ([]*resource.Resource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.listErrs[t]; err != nil {
		return nil, err
	}
	var found []*resource.Resource
	for _, e := range p.entries {
		if !e.exists || e.res.Type != t {
			continue
		}
		if e.vpcID != vpcID && !(t == resource.TypeVpc && e.res.ID == vpcID) {
			continue
		}
		copied := *e.res
		copied.State = resource.StateDiscovered
		found = append(found, &copied)
	}
	return found, nil
}

func (p *Provider) Exists(ctx context.Context, res *resource.Resource) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.existsCalls = append(p.existsCalls, key(res.Type, res.ID))
	e, ok := p.entries[key(res.Type, res.ID)]
	if !ok {
		return false, nil
	}
	if e.exists {
		return true, nil
	}
	if e.lingerChecks > 0 {
		e.lingerChecks--
		return true, nil
	}
	return false, nil
}

func (p *Provider) Delete(ctx context.Context, res *resource.Resource) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	k := key(res.Type, res.ID)
	p.deleteCalls = append(p.deleteCalls, k)

	e, ok := p.entries[k]
	if !ok || !e.exists {
		return provider.NewError(provider.KindNotFound, "Delete",
			fmt.Errorf("%s does not exist", k))
	}
	if len(e.deleteErrs) > 0 {
		err := e.deleteErrs[0]
		e.deleteErrs = e.deleteErrs[1:]
		return err
	}
	e.exists = false
	return nil
}

func (p *Provider) StripSecurityGroupRules(ctx context.Context, res *resource.Resource) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	k := key(res.Type, res.ID)
	p.stripCalls = append(p.stripCalls, k)
	if e, ok := p.entries[k]; !ok || !e.exists {
		return provider.NewError(provider.KindNotFound, "StripSecurityGroupRules",
			fmt.Errorf("%s does not exist", k))
	}
	return nil
}
