// Package vocab holds the vocabulary that drives command classification: the set
// of recognized verbs and an override table mapping exact command names to a model
// and role.
//
// A vocabulary is loaded from YAML:
//
//	version: "1"
//	inherit: true          # start from the built-in vocabulary
//	verbs: [create, update, delete, list]
//	overrides:
//	  login: Session                      # role defaults to the command name
//	  fooCreate: {model: Foo, role: create}
//
// The built-in vocabulary is tuned for the CloudStack command set and is returned
// by Default.
package vocab
