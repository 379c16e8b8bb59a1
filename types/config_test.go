package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigJSON(t *testing.T) {
	config := DefaultConfig()
	config.Log.File = "log/sunbind.log"

	bz, err := json.Marshal(config)
	require.NoError(t, err)
	expected := `{"log":{"level":"info","file":"log/sunbind.log","max_size_mb":50,"max_backups":3,"max_age_days":7},"metrics":{"enabled":false,"listen":"127.0.0.1:9464"},"checkpoint":{"backend":"memdb","name":"trajectory","every":1},"engine":{"step_size":0.001,"max_retries":5,"nls_max_iters":20,"nls_tolerance":1e-10}}`
	assert.Equal(t, expected, string(bz))

	var back Config
	require.NoError(t, json.Unmarshal(bz, &back))
	assert.Equal(t, config, back)
}
