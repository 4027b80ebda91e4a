package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"resource-generator/internal/classify"
)

type ClassifyCmd struct {
	SourceFlags `embed:""`

	Dump bool `help:"Also dump decisions and resource groups in full."`
}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

func (c *ClassifyCmd) Run(rt *globals) error {
	cmds, err := c.read(rt.ctx, rt)
	if err != nil {
		return err
	}

	v, err := c.vocabulary()
	if err != nil {
		return err
	}

	classifier := classify.New(v, rt.logger)
	decisions := classifier.Audit(cmds)

	fmt.Fprint(os.Stdout, classify.FormatDecisions(decisions))

	catalog, err := classifier.Classify(cmds)

	if c.Dump {
		dumper.Fdump(os.Stdout, decisions)

		if catalog != nil {
			dumper.Fdump(os.Stdout, catalog.Groups)
		}
	}

	return err
}
