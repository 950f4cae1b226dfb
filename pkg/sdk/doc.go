// Package campusdir embeds the campus directory in a Go program.
//
// The client talks to the same document store as the HTTP API (Valkey, Redis, MongoDB or an
// in-process memory store) and exposes the same operations without going through HTTP.
//
//	client, _ := campusdir.New(ctx, campusdir.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	_ = client.Buildings().Create(ctx, campusdir.BuildingInput{ID: "torre", Name: "Torre"})
//	_ = client.Rooms("torre").CreateBatch(ctx, []campusdir.RoomInput{
//	    {ID: "T-101", Name: "Aula 101", Level: "PISO 1"},
//	})
//	res, _ := client.Search(ctx, "T-101")
package campusdir
