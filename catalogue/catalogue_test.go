package catalogue_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solveloop/solveloop/catalogue"
	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/solveerr"
	"github.com/solveloop/solveloop/vector"
)

type stubMethod struct {
	method.Base
	d int
}

func (s *stubMethod) Next(out vector.Vector) error  { return nil }
func (s *stubMethod) SetValue(vector.Vector, float64) error { return nil }
func (s *stubMethod) Done() (method.Outcome, error) { return method.OutcomeDone, nil }
func (s *stubMethod) SetValueWithGradient(vector.Vector, float64, vector.Vector) error {
	return nil
}

func stubCtor(maxDim int) catalogue.Constructor {
	return func(d int, _ catalogue.Env) (method.Capability, error) {
		if d > maxDim {
			return nil, solveerr.New(solveerr.Unsupported, "stub", "dimensionality too high")
		}

		return &stubMethod{Base: method.Base{MethodName: "stub"}, d: d}, nil
	}
}

func testEnv() catalogue.Env {
	return catalogue.Env{Rand: rand.New(rand.NewSource(1)), Logger: diag.NewDefault()}
}

func TestStaticPopulateAndSelect(t *testing.T) {
	catalogue.Register("stub-test-a", "builtin:stub-test-a", stubCtor(1))

	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	found := false
	for _, e := range cat.Entries() {
		if e.Name == "stub-test-a" {
			found = true
		}
	}
	require.True(t, found)

	inst, err := cat.Select("stub-test-a", 1, testEnv())
	require.NoError(t, err)
	require.Equal(t, "stub", inst.Name())
}

func TestSelectRejectsBadDimensionality(t *testing.T) {
	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	_, err = cat.Select("anything", 0, testEnv())
	require.True(t, solveerr.Is(err, solveerr.InvalidArgument))
}

func TestSelectUnknownName(t *testing.T) {
	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	_, err = cat.Select("definitely-not-registered", 1, testEnv())
	require.True(t, solveerr.Is(err, solveerr.Resource))
}

func TestSelectContinuesScanningOnRecoverableFailure(t *testing.T) {
	catalogue.Register("stub-test-b", "builtin:stub-test-b-low", stubCtor(1))
	catalogue.Register("stub-test-b", "builtin:stub-test-b-high", stubCtor(5))

	cat, err := catalogue.Populate("", nil)
	require.NoError(t, err)

	inst, err := cat.Select("stub-test-b", 3, testEnv())
	require.NoError(t, err)
	require.NotNil(t, inst)
}

func TestManifestDrivenPopulate(t *testing.T) {
	catalogue.Register("stub-test-c", "builtin:stub-test-c", stubCtor(2))

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "catalogue.yaml")
	content := "methods:\n  - name: stub-test-c\n    origin: curated\n  - name: not-registered-anywhere\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0o644))

	cat, err := catalogue.Populate(dir, nil)
	require.NoError(t, err)
	require.Len(t, cat.Entries(), 1)
	require.Equal(t, "curated", cat.Entries()[0].Origin)
}

func TestPopulateInvalidRoot(t *testing.T) {
	_, err := catalogue.Populate(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	require.True(t, solveerr.Is(err, solveerr.Resource))
}
