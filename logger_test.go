// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	require.NotNil(t, Logger())
	require.Nil(t, Logger().Check(zap.DebugLevel, "x"))
}

func TestLoggerReportsBlockEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	var v Vec[int32]
	for i := range 5 {
		v.Push(int32(i))
	}
	v.Release()

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	require.Equal(t, []string{"minivec: allocate", "minivec: reallocate", "minivec: deallocate"}, msgs)

	re := logs.FilterMessage("minivec: reallocate").All()[0].ContextMap()
	require.Equal(t, int64(4), re["old_cap"])
	require.Equal(t, int64(8), re["new_cap"])
	require.Equal(t, "int32", re["elem"])
}
