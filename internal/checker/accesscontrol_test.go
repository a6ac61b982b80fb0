package checker

import (
	"reflect"
	"testing"

	"github.com/xab-mack/reguard/internal/model"
)

func fn(name, canonical string, opts ...func(*model.Function)) model.Function {
	f := model.Function{Name: name, CanonicalName: canonical}
	for _, o := range opts {
		o(&f)
	}
	return f
}

func asConstructor(f *model.Function) { f.IsConstructor = true }
func asView(f *model.Function)        { f.IsView = true }
func withModifiers(names ...string) func(*model.Function) {
	return func(f *model.Function) {
		for _, n := range names {
			f.Modifiers = append(f.Modifiers, model.Modifier{Name: n})
		}
	}
}

var vaultPolicy = Policy{
	RequiredModifiers: []string{"nonReentrant"},
	Whitelist:         []string{"batchSwapGivenIn", "batchSwapGivenOut"},
}

func vault() *model.Contract {
	return &model.Contract{
		Name: "Vault",
		EntryPoints: []model.Function{
			fn("constructor", "Vault.constructor()", asConstructor),
			fn("deposit", "Vault.deposit()"),
			fn("withdraw", "Vault.withdraw()", withModifiers("nonReentrant")),
			fn("batchSwapGivenIn", "Vault.batchSwapGivenIn()"),
			fn("balanceOf", "Vault.balanceOf(address)", asView),
		},
	}
}

func flaggedNames(rep model.Report) []string {
	var out []string
	for _, f := range rep.Findings {
		out = append(out, f.Function)
	}
	return out
}

func TestCheckVaultScenario(t *testing.T) {
	rep := Check(vault(), vaultPolicy)
	want := []string{"Vault.deposit()"}
	if got := flaggedNames(rep); !reflect.DeepEqual(got, want) {
		t.Fatalf("flagged = %v, want %v", got, want)
	}
	if msg := rep.Findings[0].Message; msg != "Vault.deposit() should have an non re-eentrant modifier" {
		t.Fatalf("message = %q", msg)
	}
	if rep.Findings[0].Fingerprint == "" {
		t.Fatal("finding has empty fingerprint")
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	a := Check(vault(), vaultPolicy)
	b := Check(vault(), vaultPolicy)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated checks differ")
	}
}

func TestConstructorNeverFlagged(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("constructor", "C.constructor()", asConstructor),
	}}
	if rep := Check(c, Policy{}); len(rep.Findings) != 0 {
		t.Fatalf("constructor flagged: %v", flaggedNames(rep))
	}
}

func TestViewNeverFlagged(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("totalSupply", "C.totalSupply()", asView),
	}}
	if rep := Check(c, Policy{RequiredModifiers: []string{"nonReentrant"}}); len(rep.Findings) != 0 {
		t.Fatalf("view function flagged: %v", flaggedNames(rep))
	}
}

func TestProtectedFunctionIgnoresWhitelist(t *testing.T) {
	// a qualifying modifier is sufficient on its own
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("swap", "C.swap()", withModifiers("onlyOwner", "nonReentrant")),
	}}
	if rep := Check(c, Policy{RequiredModifiers: []string{"nonReentrant"}}); len(rep.Findings) != 0 {
		t.Fatalf("protected function flagged: %v", flaggedNames(rep))
	}
}

func TestWhitelistOverridesMissingGuard(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("queryBatchSwapHelper", "C.queryBatchSwapHelper()"),
	}}
	pol := Policy{RequiredModifiers: []string{"nonReentrant"}, Whitelist: []string{"queryBatchSwapHelper"}}
	if rep := Check(c, pol); len(rep.Findings) != 0 {
		t.Fatalf("whitelisted function flagged: %v", flaggedNames(rep))
	}
}

func TestNonMatchingModifierIsNotProtection(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("mint", "C.mint()", withModifiers("onlyOwner")),
	}}
	rep := Check(c, Policy{RequiredModifiers: []string{"nonReentrant"}})
	if got := flaggedNames(rep); !reflect.DeepEqual(got, []string{"C.mint()"}) {
		t.Fatalf("flagged = %v", got)
	}
}

func TestModifierMatchIsExact(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("mint", "C.mint()", withModifiers("NonReentrant")),
	}}
	if rep := Check(c, Policy{RequiredModifiers: []string{"nonReentrant"}}); len(rep.Findings) != 1 {
		t.Fatalf("case-differing modifier treated as protection")
	}
}

func TestEmptyRequiredModifiersFlagsEveryNonExempt(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("a", "C.a()", withModifiers("nonReentrant")),
		fn("b", "C.b()"),
	}}
	rep := Check(c, Policy{})
	if got := flaggedNames(rep); !reflect.DeepEqual(got, []string{"C.a()", "C.b()"}) {
		t.Fatalf("flagged = %v", got)
	}
}

func TestEmptyContract(t *testing.T) {
	rep := Check(&model.Contract{Name: "Empty"}, vaultPolicy)
	if len(rep.Findings) != 0 || rep.Contract != "Empty" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestFindingsFollowEntryPointOrder(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("z", "C.z()"),
		fn("a", "C.a()"),
		fn("m", "C.m()"),
	}}
	rep := Check(c, Policy{RequiredModifiers: []string{"nonReentrant"}})
	if got := flaggedNames(rep); !reflect.DeepEqual(got, []string{"C.z()", "C.a()", "C.m()"}) {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestAllProtectedYieldsNoFindings(t *testing.T) {
	c := &model.Contract{Name: "C", EntryPoints: []model.Function{
		fn("constructor", "C.constructor()", asConstructor),
		fn("a", "C.a()", withModifiers("nonReentrant")),
		fn("b", "C.b()", withModifiers("whenNotPaused", "nonReentrant")),
		fn("peek", "C.peek()", asView),
	}}
	if rep := Check(c, vaultPolicy); len(rep.Findings) != 0 {
		t.Fatalf("compliant contract flagged: %v", flaggedNames(rep))
	}
}
