// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest runs table-driven tests against [cli.App] implementations.
package clitest

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/cato/cli"
)

// Case describes a single invocation of an application.
type Case[T cli.App] struct {
	// Args are the command-line arguments.
	Args []string
	// Stdin is the standard input. Empty if nil.
	Stdin io.Reader
	// Env holds the environment variables visible to the application.
	Env map[string]string

	// WantNothingPrinted requires both stdout and stderr to be empty.
	WantNothingPrinted bool
	// WantInStdout must be a substring of stdout.
	WantInStdout string
	// WantInStderr must be a substring of stderr.
	WantInStderr string
	// WantErr must match the returned error via errors.Is.
	WantErr error
	// WantErrType must match the returned error via errors.As. It should be
	// a pointer to the error type, for example &MyError{}.
	WantErrType error

	// CheckFunc, if set, is called with the application after it ran.
	CheckFunc func(*testing.T, T)
}

// Run runs each case as a subtest, creating a fresh application with setup.
func Run[T cli.App](t *testing.T, setup func(*testing.T) T, cases map[string]Case[T]) {
	t.Helper()

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			var stdout, stderr bytes.Buffer
			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			env := &cli.Env{
				Args:   tc.Args,
				Getenv: func(key string) string { return tc.Env[key] },
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			err := cli.Run(cli.WithEnv(t.Context(), env), app)
			checkErr(t, err, tc.WantErr, tc.WantErrType)

			if tc.WantNothingPrinted && (stdout.Len() > 0 || stderr.Len() > 0) {
				t.Errorf("want nothing printed, got stdout %q and stderr %q", stdout.String(), stderr.String())
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}

func checkErr(t *testing.T, err, wantErr, wantErrType error) {
	t.Helper()

	switch {
	case wantErr != nil:
		if !errors.Is(err, wantErr) {
			t.Fatalf("want error %v, got %v", wantErr, err)
		}
	case wantErrType != nil:
		target := reflect.New(reflect.TypeOf(wantErrType))
		if !errors.As(err, target.Interface()) {
			t.Fatalf("want error of type %T, got %T: %v", wantErrType, err, err)
		}
	case err != nil:
		t.Fatalf("unexpected error: %v", err)
	}
}
