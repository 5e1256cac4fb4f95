package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
	"github.com/reapr-io/reapr/providers/fake"
)

func conflictErr(op string) error {
	return provider.NewError(provider.KindConflict, op, errors.New("dependency still present"))
}

func permanentErr(op string) error {
	return provider.NewError(provider.KindPermanent, op, errors.New("access denied"))
}

func testCluster(resources ...*resource.Resource) *resource.Cluster {
	return &resource.Cluster{Name: "test", Region: "us-east-1", Resources: resources}
}

func mustOrder(t *testing.T, cluster *resource.Cluster) []resource.Group {
	t.Helper()
	groups, err := resource.Order(cluster)
	require.NoError(t, err)
	return groups
}

func TestExecute_DeletesInGroupOrder(t *testing.T) {
	p := fake.New()
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateDiscovered}
	sg := &resource.Resource{Type: resource.TypeSecurityGroup, ID: "sg-1", State: resource.StateDiscovered}
	vpc := &resource.Resource{Type: resource.TypeVpc, ID: "vpc-1", State: resource.StateDiscovered}
	p.Seed(instance, sg, vpc)

	exec := NewExecutor(p, fastPolicy(), 4)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(instance, sg, vpc)))

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, resource.StateDeleted, r.Resource.State)
	}
	assert.Equal(t, []string{"Instance/i-1", "SecurityGroup/sg-1", "Vpc/vpc-1"}, p.DeleteCalls())
}

func TestExecute_StripsSecurityGroupRulesBeforeDelete(t *testing.T) {
	p := fake.New()
	sg := &resource.Resource{Type: resource.TypeSecurityGroup, ID: "sg-1", State: resource.StateDiscovered}
	p.Seed(sg)

	exec := NewExecutor(p, fastPolicy(), 1)
	exec.Execute(context.Background(), mustOrder(t, testCluster(sg)))

	assert.Equal(t, []string{"SecurityGroup/sg-1"}, p.StripCalls())
	assert.Equal(t, []string{"SecurityGroup/sg-1"}, p.DeleteCalls())
	assert.Equal(t, resource.StateDeleted, sg.State)
}

func TestExecute_NotFoundIsIdempotentSuccess(t *testing.T) {
	p := fake.New()
	// Never seeded: the provider answers NotFound on the delete call.
	gone := &resource.Resource{Type: resource.TypeInstance, ID: "i-gone", State: resource.StateDiscovered}

	exec := NewExecutor(p, fastPolicy(), 1)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(gone)))

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, resource.StateDeleted, gone.State)
	assert.Equal(t, 1, results[0].Attempts)
}

func TestExecute_RetriesConflictThenSucceeds(t *testing.T) {
	p := fake.New()
	sg := &resource.Resource{Type: resource.TypeSecurityGroup, ID: "sg-1", State: resource.StateDiscovered}
	p.Seed(sg)
	p.FailDelete(resource.TypeSecurityGroup, "sg-1", conflictErr("DeleteSecurityGroup"), conflictErr("DeleteSecurityGroup"))

	exec := NewExecutor(p, fastPolicy(), 1)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(sg)))

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 3, results[0].Attempts)
	assert.Equal(t, resource.StateDeleted, sg.State)
}

func TestExecute_PermanentErrorFailsWithoutRetry(t *testing.T) {
	p := fake.New()
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateDiscovered}
	p.Seed(instance)
	p.FailDelete(resource.TypeInstance, "i-1", permanentErr("TerminateInstances"))

	exec := NewExecutor(p, fastPolicy(), 1)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(instance)))

	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Equal(t, 1, results[0].Attempts)
	assert.Equal(t, resource.StateFailed, instance.State)
}

func TestExecute_ConflictExhaustsAttempts(t *testing.T) {
	p := fake.New()
	vpc := &resource.Resource{Type: resource.TypeVpc, ID: "vpc-1", State: resource.StateDiscovered}
	p.Seed(vpc)
	p.FailDelete(resource.TypeVpc, "vpc-1",
		conflictErr("DeleteVpc"), conflictErr("DeleteVpc"), conflictErr("DeleteVpc"),
		conflictErr("DeleteVpc"), conflictErr("DeleteVpc"))

	exec := NewExecutor(p, fastPolicy(), 1)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(vpc)))

	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Equal(t, 5, results[0].Attempts)
	assert.Equal(t, resource.StateFailed, vpc.State)
}

func TestExecute_FailureDoesNotAbortSiblings(t *testing.T) {
	p := fake.New()
	good := &resource.Resource{Type: resource.TypeInstance, ID: "i-good", State: resource.StateDiscovered}
	bad := &resource.Resource{Type: resource.TypeInstance, ID: "i-bad", State: resource.StateDiscovered}
	p.Seed(good, bad)
	p.FailDelete(resource.TypeInstance, "i-bad", permanentErr("TerminateInstances"))

	exec := NewExecutor(p, fastPolicy(), 4)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(good, bad)))

	require.Len(t, results, 2)
	assert.Equal(t, resource.StateFailed, bad.State)
	assert.Equal(t, resource.StateDeleted, good.State)
}

func TestExecute_VpcAttemptedAfterEarlierFailure(t *testing.T) {
	p := fake.New()
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateDiscovered}
	vpc := &resource.Resource{Type: resource.TypeVpc, ID: "vpc-1", State: resource.StateDiscovered}
	p.Seed(instance, vpc)
	p.FailDelete(resource.TypeInstance, "i-1", permanentErr("TerminateInstances"))

	exec := NewExecutor(p, fastPolicy(), 1)
	results := exec.Execute(context.Background(), mustOrder(t, testCluster(instance, vpc)))

	require.Len(t, results, 2)
	vpcResult := results[1]
	require.Equal(t, resource.TypeVpc, vpcResult.Resource.Type)
	// Deletion is still attempted but flagged as best-effort.
	assert.NotEmpty(t, vpcResult.Warning)
	assert.Contains(t, p.DeleteCalls(), "Vpc/vpc-1")
}

func TestExecute_EmitsLifecycleEvents(t *testing.T) {
	p := fake.New()
	instance := &resource.Resource{Type: resource.TypeInstance, ID: "i-1", State: resource.StateDiscovered}
	p.Seed(instance)

	exec := NewExecutor(p, fastPolicy(), 1)
	var statuses []string
	exec.OnEvent(func(ev Event) {
		statuses = append(statuses, ev.Status)
	})
	exec.Execute(context.Background(), mustOrder(t, testCluster(instance)))

	assert.Equal(t, []string{"started", "deleted"}, statuses)
}
