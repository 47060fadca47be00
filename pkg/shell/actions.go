package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/ssargent/frota/pkg/storage"
	"github.com/ssargent/frota/pkg/store"
	"github.com/ssargent/frota/pkg/vehicle"
)

func describe(r vehicle.Record) string {
	return fmt.Sprintf("plate=%s make=%q model=%q date=%s", r.Plate(), r.Make(), r.Model(), r.Date())
}

func (s *Session) list(context.Context) bool {
	fmt.Fprintln(s.out)
	s.say(s.styles.renderCatalog(s.cat))
	fmt.Fprintln(s.out)
	return true
}

func (s *Session) search(ctx context.Context) bool {
	s.say("Enter the plate of the vehicle to look up (00-AA-00).")
	plate, ok := s.ask(ctx, "Plate > ")
	if !ok {
		return false
	}

	r, err := s.cat.Get(plate)
	if err != nil {
		s.fail(fmt.Sprintf("No vehicle with plate %s", plate))
		return true
	}
	s.say("Found: " + describe(r))
	return true
}

func (s *Session) add(ctx context.Context) bool {
	s.say("Enter the new vehicle.")

	answers := make([]string, 0, 4)
	for _, p := range []string{"Plate (00-AA-00) > ", "Make > ", "Model > ", "Date (YYYY-MM-DD) > "} {
		answer, ok := s.ask(ctx, p)
		if !ok {
			return false
		}
		answers = append(answers, answer)
	}

	r, err := newRecord(answers[0], answers[1], answers[2], answers[3])
	if err == nil {
		err = s.cat.Add(r)
	}
	s.record(ctx, storage.OpAdd, answers[0], answers[1]+" "+answers[2], err)

	if err != nil {
		s.opts.logger.Info("add rejected", "plate", answers[0], "error", err)
		s.fail("Could not add vehicle: " + err.Error())
		return true
	}
	s.succeed("Added " + describe(r))
	return true
}

func newRecord(plate, manufacturer, model, date string) (vehicle.Record, error) {
	d, err := vehicle.ParseDate(date)
	if err != nil {
		return vehicle.Record{}, err
	}
	return vehicle.New(plate, manufacturer, model, d)
}

func (s *Session) remove(ctx context.Context) bool {
	s.say("Enter the plate of the vehicle to remove (00-AA-00).")
	plate, ok := s.ask(ctx, "Plate > ")
	if !ok {
		return false
	}

	r, err := s.cat.Remove(plate)
	s.record(ctx, storage.OpRemove, plate, "", err)
	switch {
	case errors.Is(err, vehicle.ErrNotFound):
		s.fail(fmt.Sprintf("No vehicle with plate %s", plate))
		return true
	case err != nil:
		s.fail("Could not remove vehicle: " + err.Error())
		return true
	}
	s.succeed("Removed " + describe(r))
	return true
}

func (s *Session) save(ctx context.Context) bool {
	path, ok := s.prompt(ctx, fmt.Sprintf("File [%s] > ", s.opts.exportPath))
	if !ok {
		return false
	}
	if path == "" {
		path = s.opts.exportPath
	}

	err := store.Save(s.cat, path, store.WithDelimiter(s.opts.delimiter), store.WithLogger(s.opts.logger))
	s.record(ctx, storage.OpSave, "", path, err)
	if err != nil {
		s.opts.logger.Warn("save failed", "path", path, "error", err)
		s.fail("Could not save catalog: " + err.Error())
		return true
	}
	s.succeed(fmt.Sprintf("Saved %d vehicle(s) to %s", s.cat.Len(), path))
	return true
}
