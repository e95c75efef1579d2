package content

// RegisterBuiltins seeds the catalog with the content that ships with the
// application. Call it once during startup, before the first reader.
// Every entry registers with the default builtin provenance.
func RegisterBuiltins(c *Catalog) {
	for _, p := range builtinProps {
		c.Props.Register(p.ID, p)
	}
	for _, e := range builtinEnvironments {
		c.Environments.Register(e.ID, e)
	}
	for _, bp := range builtinBlueprints {
		c.Blueprints.Register(bp.ID, bp)
	}
}

func prop(id, name string, cat Category, w, d int) Prop {
	return Prop{ID: id, Name: name, Category: cat, Footprint: Footprint{Width: w, Depth: d}}
}

// builtinProps is the stock prop set for the virtual office.
var builtinProps = []Prop{
	// Furniture
	prop("desk-with-monitor", "Desk with Monitor", CategoryFurniture, 2, 1),
	prop("desk-with-dual-monitors", "Desk with Dual Monitors", CategoryFurniture, 2, 1),
	prop("desk-small", "Small Desk", CategoryFurniture, 1, 1),
	prop("desk-large", "Large Desk", CategoryFurniture, 3, 1),
	prop("standing-desk", "Standing Desk", CategoryFurniture, 2, 1),
	prop("conference-table", "Conference Table", CategoryFurniture, 4, 2),
	prop("round-table", "Round Table", CategoryFurniture, 2, 2),
	prop("chair", "Chair", CategoryFurniture, 1, 1),
	prop("office-chair", "Office Chair", CategoryFurniture, 1, 1),
	prop("couch", "Couch", CategoryFurniture, 3, 1),
	prop("couch-l-shaped", "L-Shaped Couch", CategoryFurniture, 3, 3),
	prop("bookshelf", "Bookshelf", CategoryFurniture, 2, 1),
	prop("bookshelf-tall", "Tall Bookshelf", CategoryFurniture, 2, 1),
	prop("filing-cabinet", "Filing Cabinet", CategoryFurniture, 1, 1),
	prop("locker", "Locker", CategoryFurniture, 1, 1),
	prop("wardrobe", "Wardrobe", CategoryFurniture, 2, 1),
	prop("bed", "Bed", CategoryFurniture, 2, 3),
	prop("bunk-bed", "Bunk Bed", CategoryFurniture, 2, 3),
	prop("workbench", "Workbench", CategoryFurniture, 3, 1),

	// Tech
	prop("server-rack", "Server Rack", CategoryTech, 1, 1),
	prop("monitor-wall", "Monitor Wall", CategoryTech, 3, 1),
	prop("projector-screen", "Projector Screen", CategoryTech, 3, 1),
	prop("cable-mess", "Cable Mess", CategoryTech, 1, 1),
	prop("satellite-dish", "Satellite Dish", CategoryTech, 2, 2),
	prop("antenna", "Antenna", CategoryTech, 1, 1),
	prop("router-hub", "Router Hub", CategoryTech, 1, 1),

	// Decoration
	prop("plant", "Plant", CategoryDecoration, 1, 1),
	prop("plant-large", "Large Plant", CategoryDecoration, 1, 1),
	prop("plant-hanging", "Hanging Plant", CategoryDecoration, 1, 1),
	prop("flower-pot", "Flower Pot", CategoryDecoration, 1, 1),
	prop("lamp", "Lamp", CategoryDecoration, 1, 1),
	prop("lamp-floor", "Floor Lamp", CategoryDecoration, 1, 1),
	prop("lamp-desk", "Desk Lamp", CategoryDecoration, 1, 1),
	prop("ceiling-light", "Ceiling Light", CategoryDecoration, 1, 1),
	prop("rug", "Rug", CategoryDecoration, 2, 2),
	prop("rug-large", "Large Rug", CategoryDecoration, 4, 3),
	prop("painting", "Painting", CategoryDecoration, 1, 1),
	prop("notice-board", "Notice Board", CategoryDecoration, 2, 1),
	prop("whiteboard", "Whiteboard", CategoryDecoration, 2, 1),
	prop("clock", "Clock", CategoryDecoration, 1, 1),
	prop("trophy", "Trophy", CategoryDecoration, 1, 1),
	prop("globe", "Globe", CategoryDecoration, 1, 1),

	// Kitchen / break room
	prop("coffee-machine", "Coffee Machine", CategoryKitchen, 1, 1),
	prop("water-cooler", "Water Cooler", CategoryKitchen, 1, 1),
	prop("vending-machine", "Vending Machine", CategoryKitchen, 1, 1),
	prop("fridge", "Fridge", CategoryKitchen, 1, 1),
	prop("microwave", "Microwave", CategoryKitchen, 1, 1),

	// Interaction markers for agent avatars
	prop("work-point", "Work Point", CategoryInteraction, 1, 1),
	prop("work-point-1", "Work Point 1", CategoryInteraction, 1, 1),
	prop("work-point-2", "Work Point 2", CategoryInteraction, 1, 1),
	prop("work-point-3", "Work Point 3", CategoryInteraction, 1, 1),
	prop("work-point-4", "Work Point 4", CategoryInteraction, 1, 1),
	prop("coffee-point", "Coffee Point", CategoryInteraction, 1, 1),
	prop("sleep-corner", "Sleep Corner", CategoryInteraction, 1, 1),
}

var builtinEnvironments = []Environment{
	{
		ID:               "office-day",
		Name:             "Office (Day)",
		SkyColor:         "#87ceeb",
		FloorColor:       "#d2b48c",
		AmbientIntensity: 0.8,
	},
	{
		ID:               "office-night",
		Name:             "Office (Night)",
		SkyColor:         "#0b1026",
		FloorColor:       "#3a3a4a",
		AmbientIntensity: 0.35,
	},
	{
		ID:               "rooftop",
		Name:             "Rooftop",
		SkyColor:         "#ffb347",
		FloorColor:       "#808080",
		AmbientIntensity: 0.7,
	},
	{
		ID:               "void",
		Name:             "The Void",
		SkyColor:         "#000000",
		FloorColor:       "#111111",
		AmbientIntensity: 0.5,
	},
}

var builtinBlueprints = []Blueprint{
	{
		ID:     "starter-office",
		Name:   "Starter Office",
		RoomID: "room-main",
		Width:  12,
		Height: 10,
		Placements: []Placement{
			{PropID: "desk-with-monitor", X: 2, Y: 2, Rotation: 0},
			{PropID: "office-chair", X: 2, Y: 3, Rotation: 180},
			{PropID: "desk-with-monitor", X: 5, Y: 2, Rotation: 0},
			{PropID: "office-chair", X: 5, Y: 3, Rotation: 180},
			{PropID: "work-point-1", X: 2, Y: 3, Rotation: 0},
			{PropID: "work-point-2", X: 5, Y: 3, Rotation: 0},
			{PropID: "plant", X: 0, Y: 0, Rotation: 0},
			{PropID: "coffee-machine", X: 10, Y: 0, Rotation: 90},
			{PropID: "coffee-point", X: 10, Y: 1, Rotation: 0},
			{PropID: "whiteboard", X: 8, Y: 9, Rotation: 0},
			{PropID: "rug", X: 6, Y: 6, Rotation: 0},
		},
	},
	{
		ID:     "meeting-room",
		Name:   "Meeting Room",
		RoomID: "room-meeting",
		Width:  10,
		Height: 8,
		Placements: []Placement{
			{PropID: "conference-table", X: 3, Y: 3, Rotation: 0},
			{PropID: "chair", X: 3, Y: 2, Rotation: 0},
			{PropID: "chair", X: 4, Y: 2, Rotation: 0},
			{PropID: "chair", X: 5, Y: 2, Rotation: 0},
			{PropID: "chair", X: 3, Y: 5, Rotation: 180},
			{PropID: "chair", X: 4, Y: 5, Rotation: 180},
			{PropID: "chair", X: 5, Y: 5, Rotation: 180},
			{PropID: "projector-screen", X: 4, Y: 0, Rotation: 0},
			{PropID: "notice-board", X: 0, Y: 3, Rotation: 90},
		},
	},
	{
		ID:     "break-room",
		Name:   "Break Room",
		RoomID: "room-break",
		Width:  8,
		Height: 8,
		Placements: []Placement{
			{PropID: "couch", X: 1, Y: 5, Rotation: 0},
			{PropID: "round-table", X: 3, Y: 3, Rotation: 0},
			{PropID: "vending-machine", X: 7, Y: 0, Rotation: 0},
			{PropID: "fridge", X: 6, Y: 0, Rotation: 0},
			{PropID: "microwave", X: 5, Y: 0, Rotation: 0},
			{PropID: "water-cooler", X: 0, Y: 0, Rotation: 0},
			{PropID: "sleep-corner", X: 1, Y: 6, Rotation: 0},
			{PropID: "plant-large", X: 7, Y: 7, Rotation: 0},
		},
	},
}
