package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klaijan/rootin/model"
)

type fakeGateway struct {
	products   []model.Product
	stepNames  model.StepNameMap
	treatments []model.Treatment
	err        error
}

func (f *fakeGateway) Products(context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fakeGateway) StepNames(context.Context) (model.StepNameMap, error) {
	return f.stepNames, f.err
}

func (f *fakeGateway) Treatments(context.Context) ([]model.Treatment, error) {
	return f.treatments, f.err
}

func TestLoadReplacesFallbacksWithLiveData(t *testing.T) {
	gw := &fakeGateway{
		products:   []model.Product{{ProductID: 7, BrandName: "Clinique", ProductName: "All About Eyes"}},
		stepNames:  model.StepNameMap{1: "Cleanser", 999: "Additional Care"},
		treatments: []model.Treatment{{TreatmentID: 9, Name: "dermabrasion"}},
	}
	c := New()
	require.NoError(t, c.Load(context.Background(), gw))

	assert.False(t, c.Degraded())
	assert.Len(t, c.Products(), 1)
	p, ok := c.ProductByID(7)
	require.True(t, ok)
	assert.Equal(t, "Clinique - All About Eyes", p.DisplayLabel())
	assert.Len(t, c.Treatments(), 1)
}

func TestLoadFailureFallsBackAndStaysUsable(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	c := New()
	err := c.Load(context.Background(), gw)
	require.Error(t, err)

	assert.True(t, c.Degraded())
	require.NotEmpty(t, c.Products(), "catalog must never be empty")
	_, ok := c.ProductByID(c.Products()[0].ProductID)
	assert.True(t, ok)
	assert.Equal(t, "Additional Care", c.StepName(999))
	assert.NotEmpty(t, c.Treatments())
}

func TestStepNameDefaultsToSentinelBucket(t *testing.T) {
	c := New()
	assert.Equal(t, "Cleanser", c.StepName(1))
	assert.Equal(t, "Additional Care", c.StepName(123))
}

func TestLoadInjectsSentinelWhenServerOmitsIt(t *testing.T) {
	gw := &fakeGateway{stepNames: model.StepNameMap{1: "Cleanser"}}
	c := New()
	_ = c.Load(context.Background(), gw)
	assert.Equal(t, "Additional Care", c.StepName(999))
}
