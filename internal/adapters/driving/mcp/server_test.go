package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid ports", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Catalog:   &mockCatalogService{snapshot: testSnapshot()},
			Execution: &mockExecutionService{},
			History:   &mockHistoryService{},
		})

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("history service is optional", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Catalog:   &mockCatalogService{snapshot: testSnapshot()},
			Execution: &mockExecutionService{},
		})

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("returns error when catalog service is missing", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Execution: &mockExecutionService{},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCatalogService)
		assert.Nil(t, server)
	})

	t.Run("returns error when execution service is missing", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Catalog: &mockCatalogService{snapshot: testSnapshot()},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingExecutionService)
		assert.Nil(t, server)
	})
}

func TestPortsValidate(t *testing.T) {
	t.Run("passes with all ports set", func(t *testing.T) {
		ports := &Ports{
			Catalog:   &mockCatalogService{},
			Execution: &mockExecutionService{},
			History:   &mockHistoryService{},
		}

		assert.NoError(t, ports.Validate())
	})

	t.Run("fails without catalog", func(t *testing.T) {
		ports := &Ports{Execution: &mockExecutionService{}}

		assert.ErrorIs(t, ports.Validate(), ErrMissingCatalogService)
	})

	t.Run("fails without execution", func(t *testing.T) {
		ports := &Ports{Catalog: &mockCatalogService{}}

		assert.ErrorIs(t, ports.Validate(), ErrMissingExecutionService)
	})
}
