package treeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubyParserClassAndMethods(t *testing.T) {
	src := []byte(`# Tracks pets
class Dog < Animal
  def initialize(name)
    @name = name
  end

  def self.create(name)
    new(name)
  end

  def bark?
    true
  end
end
`)
	tree, err := (&rubyParser{}).Parse(src)
	require.NoError(t, err)
	assert.False(t, tree.HasError)

	counts := collectTypes(tree.Root)
	assert.Equal(t, 1, counts["class_definition"])
	assert.Equal(t, 3, counts["function_definition"])
	assert.Equal(t, 1, counts["comment"])

	cls := findFirst(tree.Root, "class_definition")
	require.NotNil(t, cls)
	assert.Equal(t, "Dog", findFirst(cls, "identifier").Text)
	assert.Equal(t, 1, cls.StartRow)
	assert.Equal(t, 13, cls.EndRow)

	var names []string
	for _, child := range cls.Children {
		if child.Type == "function_definition" {
			names = append(names, findFirst(child, "identifier").Text)
		}
	}
	// self. receivers are stripped, trailing ? is part of the name
	assert.Equal(t, []string{"initialize", "create", "bark?"}, names)
}

func TestRubyParserBranches(t *testing.T) {
	src := []byte(`def classify(n)
  if n > 10
    "big"
  elsif n > 5
    "mid"
  else
    "small"
  end
end

def pick(n)
  case n
  when 1
    :one
  when 2
    :two
  end
end
`)
	tree, err := (&rubyParser{}).Parse(src)
	require.NoError(t, err)
	assert.False(t, tree.HasError)

	counts := collectTypes(tree.Root)
	assert.Equal(t, 2, counts["function_definition"])
	assert.Equal(t, 1, counts["if_statement"])
	assert.Equal(t, 1, counts["elif_clause"])
	assert.Equal(t, 1, counts["else_clause"])
	assert.Equal(t, 2, counts["case_clause"])
}

func TestRubyParserLoopsAndBlocks(t *testing.T) {
	src := []byte(`items.each do |item|
  puts item
end

while n < 3
  n += 1
end

for i in 1..5
  total += i
end
`)
	tree, err := (&rubyParser{}).Parse(src)
	require.NoError(t, err)
	assert.False(t, tree.HasError, "do blocks and loops must balance their ends")

	counts := collectTypes(tree.Root)
	assert.Equal(t, 1, counts["while_statement"])
	assert.Equal(t, 1, counts["for_statement"])
}

func TestRubyParserEndlessDefinition(t *testing.T) {
	// Endless definitions have no end keyword of their own.
	src := []byte(`class Config
  def answer = 42

  def full?
    true
  end
end
`)
	tree, err := (&rubyParser{}).Parse(src)
	require.NoError(t, err)
	assert.False(t, tree.HasError)

	counts := collectTypes(tree.Root)
	assert.Equal(t, 2, counts["function_definition"])

	cls := findFirst(tree.Root, "class_definition")
	require.NotNil(t, cls)
	assert.Equal(t, 6, cls.EndRow)
}

func TestRubyParserCommentsAndStrings(t *testing.T) {
	src := []byte(`=begin
Multi-line header
=end
def run
  label = ready ? "go" : "wait"
  note = "nothing to do"
  exec! # fires the job
end
`)
	tree, err := (&rubyParser{}).Parse(src)
	require.NoError(t, err)
	assert.False(t, tree.HasError, "keywords inside strings and comments must not open frames")

	counts := collectTypes(tree.Root)
	assert.Equal(t, 1, counts["function_definition"])
	assert.Equal(t, 1, counts["conditional_expression"])

	doc := findFirst(tree.Root, "block_comment")
	require.NotNil(t, doc)
	assert.Equal(t, 0, doc.StartRow)
	assert.Equal(t, 2, doc.EndRow)
}

func TestRubyParserRescue(t *testing.T) {
	src := []byte(`begin
  risky
rescue KeyError => e
  recover(e)
end
`)
	tree, err := (&rubyParser{}).Parse(src)
	require.NoError(t, err)
	assert.False(t, tree.HasError)
	assert.Equal(t, 1, collectTypes(tree.Root)["catch_clause"])
}

func TestRubyParserUnbalancedEnds(t *testing.T) {
	tree, err := (&rubyParser{}).Parse([]byte("def broken\n  x = 1\n"))
	require.NoError(t, err)
	assert.True(t, tree.HasError)

	tree, err = (&rubyParser{}).Parse([]byte("x = 1\nend\n"))
	require.NoError(t, err)
	assert.True(t, tree.HasError)
}

func TestRubyParserBareParameters(t *testing.T) {
	tree, err := (&rubyParser{}).Parse([]byte("def greet name, greeting\n  puts greeting\nend\n"))
	require.NoError(t, err)
	assert.False(t, tree.HasError)

	fn := findFirst(tree.Root, "function_definition")
	require.NotNil(t, fn)
	params := findFirst(fn, "parameters")
	require.NotNil(t, params)
	assert.Len(t, params.Children, 2)
}
