package report

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"tlog.app/go/errors"

	"github.com/movingco/move-to-ts/internal/diagnostic"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()

	os.Exit(m.Run())
}

func TestDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	ds := diagnostic.New()
	ds.Errorf("ir/coin.yaml", 3, 7, "unsupported command (%s)", "jump")
	ds.Add(diagnostic.Diagnostic{Severity: diagnostic.Warning, Message: "missing dependency std::signer", File: "ir/coin.yaml", Hint: "add its IR file"})

	r.Diagnostics(ds)

	assert.Equal(t, ` error  coin.yaml:3:7
  unsupported command (jump)
 warning  coin.yaml:0:0
  missing dependency std::signer
  hint: add its IR file
`, buf.String())
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	ds := diagnostic.New()
	r.Summary(3, 4, ds, 1500*time.Microsecond)
	assert.Equal(t, " OK  3 modules, 4 files, 0 errors, 0 warnings in 2ms\n", buf.String())

	buf.Reset()
	ds.Errorf("f", 1, 1, "bad")
	r.Summary(1, 0, ds, time.Second)
	assert.Equal(t, " FAILED  1 modules, 0 files, 1 errors, 0 warnings in 1s\n", buf.String())
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Error("config", errors.New("bad jobs"))
	r.Info("wrote", "build/ts")
	r.Order([]string{"std::signer", "aptos_framework::coin"})

	assert.Equal(t, " config  bad jobs\n wrote  build/ts\n  1  std::signer\n  2  aptos_framework::coin\n", buf.String())
}
