// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"

	"github.com/dieple/lsmerge/pkg/version"
	"github.com/dieple/lsmerge/pkg/yamltree"
	goversion "github.com/hashicorp/go-version"
)

// VersionGateKey is an optional top-level base document key holding a
// version constraint (eg ">= 0.4.0, < 1.0.0") the running tool must
// satisfy. The key never appears in resolved output.
const VersionGateKey = "lsmerge_version"

func applyVersionGate(doc *yamltree.Document) (*yamltree.Document, error) {
	baseMap, isMap := doc.Value.(*yamltree.Map)
	if !isMap {
		return doc, nil
	}

	item := baseMap.Get(VersionGateKey)
	if item == nil {
		return doc, nil
	}

	constraintStr, isStr := item.Value.(string)
	if !isStr {
		return nil, fmt.Errorf("Expected %s at %s to be a string constraint",
			VersionGateKey, item.Position.AsString())
	}

	constraints, err := goversion.NewConstraint(constraintStr)
	if err != nil {
		return nil, fmt.Errorf("Parsing %s constraint '%s': %s", VersionGateKey, constraintStr, err)
	}

	currentVersion, err := goversion.NewVersion(version.Version)
	if err != nil {
		return nil, fmt.Errorf("Parsing tool version '%s': %s", version.Version, err)
	}

	if !constraints.Check(currentVersion) {
		return nil, fmt.Errorf("Document requires lsmerge version '%s', but this is version %s",
			constraintStr, version.Version)
	}

	newDoc := doc.DeepCopy()
	newDoc.Value.(*yamltree.Map).Delete(VersionGateKey)

	return newDoc, nil
}
