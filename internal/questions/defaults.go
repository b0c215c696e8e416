package questions

// Usability study comparing three crop-monitoring interfaces
var defaultCategories = []Category{
	{
		Name: "General",
		Questions: []string{
			"How familiar are you with using phones or digital screens?",
			"When you look at these interfaces, what do you understand first without an explanation?",
		},
	},
	{
		Name: "Traffic light",
		Questions: []string{
			"What do you think each color (green, yellow, red) means?",
			"Is it easy to tell the state of the crop with this color system?",
			"What advantages do you see in showing the information this way?",
			"What difficulties could you have with this design?",
			"If you had to make a quick decision (water or not), does this interface help you?",
		},
	},
	{
		Name: "Pictograms",
		Questions: []string{
			"What does the half-full drop represent?",
			"Is it easier to understand humidity from a half-full drop or from a number?",
			"How clear are the sun and the cloud as a way to show the weather?",
			"What advantages do you find in this design?",
			"What difficulties could come up when reading the images?",
		},
	},
	{
		Name: "Table",
		Questions: []string{
			"Can you easily tell what each row of the table means?",
			"How clear are the numbers for making decisions?",
			"Do you prefer exact percentages or images (like the drop)?",
			"What advantages do you see in this design?",
			"What difficulties could you have understanding it?",
		},
	},
	{
		Name: "Comparison",
		Questions: []string{
			"Of the three interfaces (traffic light, pictograms, table), which seems easiest to understand?",
			"Which one gives you more confidence to make a decision?",
			"Which one would serve you best day to day in the field?",
			"Would you change anything in any of them to make it clearer?",
		},
	},
	{
		Name: "Closing",
		Questions: []string{
			"Is there anything you would like to add or suggest to improve these interfaces?",
			"If you had to recommend only one of these interfaces to other farmers, which would it be and why?",
		},
	},
}
