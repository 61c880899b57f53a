package main

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

/*
frames can be written to sqlite instead of (or as well as) images, one row
per planet per frame, for plotting trajectories elsewhere. the program
never reads them back.

really only 1 worker is useful for sqlite since it allows only 1 writer at a time.
*/

const schema = `
CREATE TABLE planets (
	frame 	INTEGER,
	time 	REAL,    -- s
	id 		INTEGER, -- planet index
	x 		REAL,
	y 		REAL,
	vx 		REAL,
	vy 		REAL,
	mass 	REAL,
	radius 	REAL);
CREATE INDEX idx_frame ON planets (frame, id);
`

const insert = `INSERT INTO planets VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

// opens and initializes db in filename. refuses to touch an existing file.
func opendb(filename string) (*sql.DB, error) {
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("%s exists", filename)
	}
	db, err := sql.Open("sqlite3", "file:"+filename+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// writes each frame to db in its own transaction.
func frameToSqlite(db *sql.DB, wg *sync.WaitGroup, ch chan *frameJob) {
	stmt, err := db.Prepare(insert)
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for job := range ch {
		if err := writeFrame(db, stmt, job); err != nil {
			panic(err)
		}
	}
	wg.Done()
}

func writeFrame(db *sql.DB, stmt *sql.Stmt, job *frameJob) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	txStmt := tx.Stmt(stmt)
	for _, p := range job.Planets {
		_, err = txStmt.Exec(
			job.Frame,
			job.Time,
			p.ID,
			p.Pos.X(),
			p.Pos.Y(),
			p.Vel.X(),
			p.Vel.Y(),
			p.Mass,
			p.Radius)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("frame %d: %w", job.Frame, err)
		}
	}
	return tx.Commit()
}
