package model

import "fmt"

// CheckConstraint is a named SQL check constraint declared on an
// entity type.
type CheckConstraint struct {
	entity *EntityType
	name   string
	sql    string
}

// DeclaringEntity returns the entity type the constraint is declared on.
func (cc *CheckConstraint) DeclaringEntity() *EntityType { return cc.entity }

// Name returns the constraint name.
func (cc *CheckConstraint) Name() string { return cc.name }

// SQL returns the constraint expression.
func (cc *CheckConstraint) SQL() string { return cc.sql }

// AreCompatible reports whether this constraint and another one with
// the same name on the given store object can share it: the SQL
// expressions must match exactly. A non-nil error describes the
// mismatch.
func (cc *CheckConstraint) AreCompatible(other *CheckConstraint, so StoreObject) error {
	if cc.sql != other.sql {
		return fmt.Errorf("check constraint %q on %s has expression %q from %s but %q from %s",
			cc.name, so, cc.sql, cc.entity.Name(), other.sql, other.entity.Name())
	}
	return nil
}

// Trigger is a database trigger declared on an entity type. The
// declared table binding, if any, must match the entity type's table.
type Trigger struct {
	entity      *EntityType
	name        string
	tableName   string
	tableSchema string
}

// DeclaringEntity returns the entity type the trigger is declared on.
func (tg *Trigger) DeclaringEntity() *EntityType { return tg.entity }

// Name returns the trigger name.
func (tg *Trigger) Name() string { return tg.name }

// Table returns the explicitly declared table binding of the trigger.
// ok is false when the trigger defaults to its entity type's table.
func (tg *Trigger) Table() (name, schema string, ok bool) {
	return tg.tableName, tg.tableSchema, tg.tableName != ""
}
