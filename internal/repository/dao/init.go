package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Round{},
		&Room{},
		&Team{},
		&Judge{},
		&Ticket{},
		&Debate{},
		&DebateTeam{},
		&DebateJudge{},
		&Ballot{},
		&BallotScore{},
		&BallotTeamRank{},
		&TeamResult{},
		&SpeakerResult{},
	)
}
