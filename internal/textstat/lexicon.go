package textstat

// entry is a lexicon score: polarity in [-1, 1], subjectivity in [0, 1].
type entry struct {
	polarity     float64
	subjectivity float64
}

// lexicon is a subset of the pattern/TextBlob English adjective lexicon.
var lexicon = map[string]entry{
	"able":          {0.5, 0.625},
	"absurd":        {-0.5, 1.0},
	"amazing":       {0.6, 0.9},
	"angry":         {-0.5, 1.0},
	"annoying":      {-0.8, 0.9},
	"anxious":       {-0.25, 0.75},
	"awesome":       {1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"bad":           {-0.7, 0.667},
	"beautiful":     {0.85, 1.0},
	"best":          {1.0, 0.3},
	"better":        {0.5, 0.5},
	"boring":        {-1.0, 1.0},
	"brilliant":     {0.9, 1.0},
	"broken":        {-0.4, 0.4},
	"calm":          {0.3, 0.75},
	"careful":       {-0.1, 1.0},
	"cheap":         {0.4, 0.7},
	"clean":         {0.367, 0.692},
	"clear":         {0.1, 0.383},
	"clever":        {0.5, 0.75},
	"complex":       {-0.3, 0.4},
	"confused":      {-0.4, 0.7},
	"cool":          {0.35, 0.65},
	"correct":       {0.0, 0.0},
	"crazy":         {-0.6, 0.9},
	"creative":      {0.5, 1.0},
	"curious":       {-0.1, 1.0},
	"dangerous":     {-0.6, 0.9},
	"dark":          {-0.15, 0.4},
	"dead":          {-0.2, 0.4},
	"deep":          {0.0, 0.4},
	"delightful":    {1.0, 1.0},
	"different":     {0.0, 0.6},
	"difficult":     {-0.5, 1.0},
	"dirty":         {-0.6, 0.8},
	"dull":          {-0.3, 0.8},
	"easy":          {0.433, 0.833},
	"effective":     {0.6, 0.8},
	"elegant":       {0.5, 0.65},
	"empty":         {-0.1, 0.5},
	"enjoyable":     {0.5, 0.75},
	"entire":        {0.0, 0.625},
	"essential":     {0.0, 0.6},
	"evil":          {-1.0, 1.0},
	"excellent":     {1.0, 1.0},
	"exciting":      {0.3, 0.8},
	"fair":          {0.7, 0.9},
	"fake":          {-0.5, 1.0},
	"false":         {-0.4, 0.6},
	"familiar":      {0.375, 0.5},
	"fantastic":     {0.4, 0.9},
	"fascinating":   {0.7, 0.9},
	"fast":          {0.2, 0.6},
	"fine":          {0.417, 0.5},
	"free":          {0.4, 0.8},
	"fun":           {0.3, 0.2},
	"funny":         {0.25, 0.75},
	"general":       {0.05, 0.5},
	"gentle":        {0.35, 0.65},
	"glad":          {0.5, 1.0},
	"good":          {0.7, 0.6},
	"great":         {0.8, 0.75},
	"happy":         {0.8, 1.0},
	"hard":          {-0.292, 0.542},
	"harmful":       {-0.6, 0.8},
	"helpful":       {0.5, 0.5},
	"honest":        {0.6, 0.9},
	"horrible":      {-1.0, 1.0},
	"huge":          {0.4, 0.9},
	"ideal":         {0.9, 0.9},
	"ill":           {-0.5, 0.8},
	"important":     {0.4, 1.0},
	"impossible":    {-0.667, 1.0},
	"impressive":    {1.0, 1.0},
	"incredible":    {0.9, 0.9},
	"inspiring":     {0.6, 0.9},
	"interesting":   {0.5, 0.5},
	"irrelevant":    {-0.4, 0.4},
	"lazy":          {-0.25, 0.5},
	"lonely":        {-0.1, 0.7},
	"lovely":        {0.5, 0.75},
	"lucky":         {0.333, 1.0},
	"mad":           {-0.625, 1.0},
	"magnificent":   {1.0, 1.0},
	"meaningful":    {0.5, 0.75},
	"messy":         {-0.3, 0.6},
	"miserable":     {-1.0, 1.0},
	"nasty":         {-1.0, 1.0},
	"natural":       {0.1, 0.4},
	"neat":          {0.4, 0.6},
	"nice":          {0.6, 1.0},
	"novel":         {0.4, 0.6},
	"obvious":       {0.0, 0.5},
	"odd":           {-0.167, 0.5},
	"painful":       {-0.7, 0.9},
	"peaceful":      {0.5, 0.9},
	"perfect":       {1.0, 1.0},
	"pleasant":      {0.733, 0.967},
	"poor":          {-0.4, 0.6},
	"powerful":      {0.3, 1.0},
	"pretty":        {0.25, 1.0},
	"productive":    {0.3, 0.6},
	"profound":      {0.5, 0.8},
	"promising":     {0.5, 0.8},
	"proud":         {0.8, 1.0},
	"rational":      {0.2, 0.5},
	"real":          {0.2, 0.3},
	"remarkable":    {0.75, 0.75},
	"rich":          {0.375, 0.625},
	"ridiculous":    {-0.333, 1.0},
	"right":         {0.286, 0.536},
	"rough":         {-0.1, 0.55},
	"rude":          {-0.5, 0.7},
	"sad":           {-0.5, 1.0},
	"safe":          {0.5, 0.5},
	"scary":         {-0.5, 1.0},
	"serious":       {-0.333, 0.667},
	"shallow":       {-0.3, 0.5},
	"silly":         {-0.5, 0.9},
	"simple":        {0.0, 0.357},
	"slow":          {-0.3, 0.4},
	"smart":         {0.214, 0.643},
	"strange":       {-0.05, 0.15},
	"strong":        {0.433, 0.733},
	"stupid":        {-0.8, 1.0},
	"successful":    {0.75, 0.95},
	"superb":        {1.0, 1.0},
	"sure":          {0.5, 0.889},
	"surprising":    {0.2, 0.7},
	"terrible":      {-1.0, 1.0},
	"tired":         {-0.4, 0.7},
	"true":          {0.35, 0.65},
	"ugly":          {-0.7, 1.0},
	"unclear":       {-0.1, 0.4},
	"uncomfortable": {-0.5, 0.7},
	"unfair":        {-0.5, 0.9},
	"unhappy":       {-0.6, 0.9},
	"unique":        {0.375, 1.0},
	"unusual":       {-0.25, 0.45},
	"useful":        {0.3, 0.0},
	"useless":       {-0.5, 0.2},
	"valuable":      {0.5, 0.5},
	"weak":          {-0.375, 0.625},
	"weird":         {-0.5, 1.0},
	"wise":          {0.7, 0.9},
	"wonderful":     {1.0, 1.0},
	"worse":         {-0.4, 0.6},
	"worst":         {-1.0, 1.0},
	"wrong":         {-0.5, 0.9},
}

// intensifiers scale the score of the word that follows them.
var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"incredibly": 1.4,
	"so":         1.2,
	"too":        1.2,
	"quite":      1.1,
	"highly":     1.3,
	"slightly":   0.6,
	"somewhat":   0.7,
	"fairly":     0.9,
}

var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"n't":     true,
	"neither": true,
	"nor":     true,
	"hardly":  true,
}
