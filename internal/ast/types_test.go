package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TypesEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b Type
		want bool
	}{
		{name: "same base", a: BaseType{Name: Entier}, b: BaseType{Name: Entier}, want: true},
		{name: "different base", a: BaseType{Name: Entier}, b: BaseType{Name: Reel}, want: false},
		{name: "pointer to same inner", a: PtrType{Inner: BaseType{Name: Entier}}, b: PtrType{Inner: BaseType{Name: Entier}}, want: true},
		{name: "pointer to different inner", a: PtrType{Inner: BaseType{Name: Entier}}, b: PtrType{Inner: BaseType{Name: Reel}}, want: false},
		{name: "table same ranges and inner", a: TableType{
			Ranges: []Range{{Start: 1, End: 5, EndSet: true}}, Inner: BaseType{Name: Entier},
		}, b: TableType{
			Ranges: []Range{{Start: 1, End: 5, EndSet: true}}, Inner: BaseType{Name: Entier},
		}, want: true},
		{name: "table different range count", a: TableType{
			Ranges: []Range{{Start: 1, End: 5, EndSet: true}}, Inner: BaseType{Name: Entier},
		}, b: TableType{
			Ranges: []Range{{Start: 1, End: 5, EndSet: true}, {Start: 1, End: 2, EndSet: true}}, Inner: BaseType{Name: Entier},
		}, want: false},
		{name: "table unset ends both match", a: TableType{
			Ranges: []Range{{Start: 1, EndSet: false}}, Inner: BaseType{Name: Entier},
		}, b: TableType{
			Ranges: []Range{{Start: 1, EndSet: false}}, Inner: BaseType{Name: Entier},
		}, want: true},
		{name: "base vs table mismatch", a: BaseType{Name: Entier}, b: TableType{Inner: BaseType{Name: Entier}}, want: false},
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "one nil", a: BaseType{Name: Entier}, b: nil, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TypesEqual(tc.a, tc.b))
		})
	}
}

func Test_Type_String(t *testing.T) {
	assert.Equal(t, "entier", BaseType{Name: Entier}.String())
	assert.Equal(t, "pointeur sur entier", PtrType{Inner: BaseType{Name: Entier}}.String())

	tt := TableType{Ranges: []Range{{Start: 1, End: 5, EndSet: true}}, Inner: BaseType{Name: Entier}}
	assert.Equal(t, "tableau 1..5 de entier", tt.String())
}
