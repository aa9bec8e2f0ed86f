package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "modgen" {
		t.Errorf("CLIName = %q, want modgen", CLIName())
	}
	if HomeDir() != ".modgen" {
		t.Errorf("HomeDir = %q, want .modgen", HomeDir())
	}
	if got := EnvVar("publisher"); got != "MODGEN_PUBLISHER" {
		t.Errorf("EnvVar(publisher) = %q, want MODGEN_PUBLISHER", got)
	}
}
