package directory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/visitdesk/internal/directory"
	"github.com/rpggio/visitdesk/internal/domain/customer"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := directory.Default()

	require.Len(t, d.ExistingCustomers(), 2)
	require.Len(t, d.ProspectCustomers(), 2)

	e2, ok := d.Lookup("e2")
	require.True(t, ok)
	require.Equal(t, "蒙牛集团", e2.Name)
	require.True(t, e2.IsExisting())

	p1, ok := d.Lookup("p1")
	require.True(t, ok)
	require.Equal(t, customer.KindProspect, p1.Kind)
	_, hasContact := p1.PrimaryContact()
	require.False(t, hasContact)

	_, ok = d.Lookup("missing")
	require.False(t, ok)
}

func TestListsAreCopies(t *testing.T) {
	d := directory.Default()

	list := d.ExistingCustomers()
	list[0].Name = "changed"
	list[0].Contacts[0].Name = "changed"

	e1, ok := d.Lookup("e1")
	require.True(t, ok)
	require.Equal(t, "五粮液集团有限公司", e1.Name)
	require.Equal(t, "张总监", e1.Contacts[0].Name)
}

func TestNew_RejectsBadEntries(t *testing.T) {
	_, err := directory.New([]customer.Customer{{ID: "x", Name: "a"}}, []customer.Customer{{ID: "x", Name: "b"}})
	require.ErrorIs(t, err, directory.ErrDuplicateID)

	_, err = directory.New([]customer.Customer{{ID: "", Name: "a"}}, nil)
	require.ErrorIs(t, err, directory.ErrInvalidEntry)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.yaml")
	content := `
existing:
  - id: e9
    name: Acme Foods
    contacts:
      - name: Ops Lead
        phone: "100"
prospects:
  - id: p9
    name: Beta Retail
    kind: existing
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := directory.LoadFile(path)
	require.NoError(t, err)

	e9, ok := d.Lookup("e9")
	require.True(t, ok)
	require.Equal(t, customer.KindExisting, e9.Kind)
	require.Equal(t, "100", e9.Contacts[0].Phone)

	p9, ok := d.Lookup("p9")
	require.True(t, ok)
	require.Equal(t, customer.KindProspect, p9.Kind, "list position decides kind")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	d, err := directory.Load("")
	require.NoError(t, err)
	require.Len(t, d.ProspectCustomers(), 2)

	_, err = directory.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
