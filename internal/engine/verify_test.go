package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reapr-io/reapr/internal/resource"
	"github.com/reapr-io/reapr/providers/fake"
)

func TestVerify_EmptyResidueAfterCleanDeletion(t *testing.T) {
	p := fake.New()
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateDiscovered}
	p.Seed(instance)
	require.NoError(t, p.Delete(context.Background(), instance))
	instance.State = resource.StateDeleted

	v := NewVerifier(p, time.Millisecond, 2, 4)
	residue := v.Verify(context.Background(), testCluster(instance))

	assert.Empty(t, residue)
	assert.Equal(t, resource.StateDeleted, instance.State)
}

func TestVerify_LingerWithinBudgetConverges(t *testing.T) {
	p := fake.New()
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateDiscovered}
	p.Seed(instance)
	require.NoError(t, p.Delete(context.Background(), instance))
	instance.State = resource.StateDeleted
	// Two more positive existence answers, then gone; budget of three covers it.
	p.Linger(resource.TypeInstance, "i-1", 2)

	v := NewVerifier(p, time.Millisecond, 3, 4)
	residue := v.Verify(context.Background(), testCluster(instance))

	assert.Empty(t, residue)
}

func TestVerify_LingerBeyondBudgetIsOrphaned(t *testing.T) {
	p := fake.New()
	lb := &resource.Resource{Type: resource.TypeLoadBalancer, ID: "lb-arn-1", State: resource.StateDiscovered}
	p.Seed(lb)
	require.NoError(t, p.Delete(context.Background(), lb))
	lb.State = resource.StateDeleted
	p.Linger(resource.TypeLoadBalancer, "lb-arn-1", 10)

	v := NewVerifier(p, time.Millisecond, 3, 4)
	residue := v.Verify(context.Background(), testCluster(lb))

	require.Len(t, residue, 1)
	assert.Equal(t, "lb-arn-1", residue[0].ID)
	assert.Equal(t, resource.StateOrphaned, residue[0].State)
}

func TestVerify_FailedResourceStaysFailedInResidue(t *testing.T) {
	p := fake.New()
	vpc := &resource.Resource{Type: resource.TypeVpc, ID: "vpc-1", State: resource.StateFailed}
	p.Seed(vpc) // never deleted, still exists

	v := NewVerifier(p, time.Millisecond, 2, 4)
	residue := v.Verify(context.Background(), testCluster(vpc))

	require.Len(t, residue, 1)
	assert.Equal(t, resource.StateFailed, residue[0].State)
}

func TestVerify_FailedButGoneIsDroppedFromResidue(t *testing.T) {
	p := fake.New()
	// Marked failed, but the provider no longer reports it. Someone or
	// something else removed it between execution and verification.
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateFailed}

	v := NewVerifier(p, time.Millisecond, 2, 4)
	residue := v.Verify(context.Background(), testCluster(instance))

	assert.Empty(t, residue)
}

func TestVerify_SynchronousTypeCheckedOnce(t *testing.T) {
	p := fake.New()
	sg := &resource.Resource{Type: resource.TypeSecurityGroup, ID: "sg-1", State: resource.StateDeleted}
	p.Seed(sg) // still present despite the claimed deletion

	v := NewVerifier(p, time.Millisecond, 12, 4)
	residue := v.Verify(context.Background(), testCluster(sg))

	require.Len(t, residue, 1)
	assert.Equal(t, resource.StateOrphaned, residue[0].State)
	assert.Len(t, p.ExistsCalls(), 1)
}

func TestVerify_AsyncTypeGetsFullPollBudget(t *testing.T) {
	p := fake.New()
	nat := &resource.Resource{Type: resource.TypeNatGateway, ID: "nat-1", State: resource.StateDeleted}
	p.Seed(nat)

	v := NewVerifier(p, time.Millisecond, 4, 4)
	residue := v.Verify(context.Background(), testCluster(nat))

	require.Len(t, residue, 1)
	assert.Len(t, p.ExistsCalls(), 4)
}
