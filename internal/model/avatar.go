package model

// Avatar is the ledger-side snapshot of a player character.
// Address fields are hex strings; the core never derives or verifies them.
type Avatar struct {
	Address      string
	AgentAddress string
	Name         string
	CharacterID  int32
	Level        int32
	Exp          int64
	Inventory    Inventory

	// ClearedStageID is the highest cleared stage, 0 for none.
	ClearedStageID int32

	Hair int32
	Lens int32
	Ear  int32
	Tail int32

	BlockIndex int64 // блок последнего изменения
}

// Clone returns a deep copy.
func (a Avatar) Clone() Avatar {
	a.Inventory = a.Inventory.Clone()
	return a
}

// ClearStage records stageID as cleared if it advances progress.
func (a *Avatar) ClearStage(stageID int32) {
	if stageID > a.ClearedStageID {
		a.ClearedStageID = stageID
	}
}
