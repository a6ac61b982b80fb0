package model

import "time"

// Project is the read-only contract model produced by the external engine.
// Contract order follows the engine's output; the checker never mutates it.
type Project struct {
	Contracts []Contract `json:"contracts"`
}

// Contract returns the contract with the given name, or nil. Matching is exact.
func (p *Project) Contract(name string) *Contract {
	for i := range p.Contracts {
		if p.Contracts[i].Name == name {
			return &p.Contracts[i]
		}
	}
	return nil
}

func (p *Project) ContractNames() []string {
	names := make([]string, 0, len(p.Contracts))
	for _, c := range p.Contracts {
		names = append(names, c.Name)
	}
	return names
}

type Contract struct {
	Name string `json:"name"`
	File string `json:"file"`
	Line int    `json:"line"`
	// EntryPoints are the externally reachable functions (public/external),
	// inherited ones already resolved by the engine, in declaration order.
	EntryPoints []Function `json:"entryPoints"`
}

type Function struct {
	Name          string     `json:"name"`
	CanonicalName string     `json:"canonicalName"`
	IsConstructor bool       `json:"isConstructor"`
	IsView        bool       `json:"isView"`
	Modifiers     []Modifier `json:"modifiers"`
	File          string     `json:"file"`
	Line          int        `json:"line"`
}

type Modifier struct {
	Name string `json:"name"`
}

func (m Modifier) String() string { return m.Name }

type Finding struct {
	RuleID      string `json:"ruleId"`
	Contract    string `json:"contract"`
	Function    string `json:"function"` // canonical name
	Name        string `json:"name"`     // bare identifier
	File        string `json:"file"`
	Line        int    `json:"line"`
	Message     string `json:"message"`
	Fingerprint string `json:"fingerprint"`
}

// Report is one contract's check result: zero findings means compliant.
type Report struct {
	Contract string    `json:"contract"`
	Findings []Finding `json:"findings"`
}

type CheckRequest struct {
	Path              string
	Contracts         []string
	AllContracts      bool
	RequiredModifiers []string
	Whitelist         []string
	WhitelistFile     string
	SlitherPath       string
	SlitherArgs       []string
	TimeBudget        time.Duration
}

type CheckResult struct {
	Reports  []Report      `json:"reports"`
	Findings []Finding     `json:"findings"`
	Elapsed  time.Duration `json:"elapsed"`
}
